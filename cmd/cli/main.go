package main

import (
	"fmt"
	"os"

	"github.com/himanishpuri/SyncLyrics/pkg/logger"
	"github.com/himanishpuri/SyncLyrics/pkg/synclyrics"
	"github.com/himanishpuri/SyncLyrics/pkg/utils"
	"github.com/spf13/cobra"
)

// Global flags
var (
	dbPath  string
	verbose bool
	quiet   bool
	strict  bool
	workers int
)

var rootCmd = &cobra.Command{
	Use:   "synclyrics",
	Short: "Parse and store time-synchronized TTML lyrics",
	Long: `SyncLyrics converts TTML lyrics documents (the dialect served by Apple Music)
into timed lyric lines and keeps them in a local SQLite library.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	utils.LoadDotEnv()

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", utils.GetEnvOrDefault("SYNCLYRICS_DB_PATH", "synclyrics.sqlite3"), "Path to the SQLite database file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject a songwriter list not named <songwriters>")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "j", utils.GetEnvIntOrDefault("SYNCLYRICS_IMPORT_WORKERS", 4), "files parsed concurrently by import-dir")
}

func setupLogging() {
	switch {
	case quiet:
		logger.SetLevel(logger.ERROR)
	case verbose:
		logger.SetLevel(logger.DEBUG)
		logger.GetLogger().SetShowCaller(true)
	}
}

// createService creates a lyrics service with the configured options
func createService() (synclyrics.Service, error) {
	return synclyrics.NewService(
		synclyrics.WithDBPath(dbPath),
		synclyrics.WithStrictSongwriters(strict),
		synclyrics.WithImportWorkers(workers),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printBanner() {
	banner := `
  ____                   _              _
 / ___| _   _ _ __   ___| |   _   _ _ __(_) ___ ___
 \___ \| | | | '_ \ / __| |  | | | | '__| |/ __/ __|
  ___) | |_| | | | | (__| |__| |_| | |  | | (__\__ \
 |____/ \__, |_| |_|\___|_____\__, |_|  |_|\___|___/
        |___/                 |___/
           Synchronized Lyrics CLI Tool
`
	fmt.Println(banner)
}

// formatTimestamp renders seconds as m:ss.mmm
func formatTimestamp(seconds float64) string {
	ms := int64(seconds*1000 + 0.5)
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}
