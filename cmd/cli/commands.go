package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/himanishpuri/SyncLyrics/pkg/logger"
	"github.com/himanishpuri/SyncLyrics/pkg/synclyrics"
	"github.com/himanishpuri/SyncLyrics/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	pretty     bool

	trackID  string
	title    string
	artist   string
	musicURL string

	asJSON bool
	atTime float64
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a TTML document and print the lyrics as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Parse a TTML document and store it for a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importDirCmd = &cobra.Command{
	Use:   "import-dir <dir>",
	Short: "Import every .ttml/.xml file in a directory, named by track id",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportDir,
}

var showCmd = &cobra.Command{
	Use:   "show <track-id>",
	Short: "Print the stored lyrics of a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tracks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <track-id>",
	Short: "Delete the stored lyrics of a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write JSON to a file instead of stdout")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")

	importCmd.Flags().StringVar(&trackID, "track-id", "", "track id to store the lyrics under")
	importCmd.Flags().StringVar(&musicURL, "url", "", "Apple Music song URL to take the track id from")
	importCmd.Flags().StringVar(&title, "title", "", "track title")
	importCmd.Flags().StringVar(&artist, "artist", "", "track artist")

	showCmd.Flags().BoolVar(&asJSON, "json", false, "print the stored document as JSON")
	showCmd.Flags().Float64Var(&atTime, "at", -1, "highlight the line active at this playback position (seconds)")

	rootCmd.AddCommand(parseCmd, importCmd, importDirCmd, showCmd, listCmd, deleteCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logger.GetLogger()

	raw, err := utils.ReadInput(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to read input: %v\n", err)
		return err
	}

	parser := synclyrics.NewParser(synclyrics.WithStrictSongwriters(strict))
	doc, err := parser.Parse(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to parse lyrics (%s): %v\n", synclyrics.KindOf(err), err)
		log.Errorf("Parse failed: %v", err)
		return err
	}

	out, err := synclyrics.Serialize(doc)
	if err != nil {
		return err
	}
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(out), "", "  "); err != nil {
			return err
		}
		out = buf.String()
	}

	log.Debugf("Parsed %d lines, %d songwriters", len(doc.Lines), len(doc.Songwriters))

	if outputPath == "" {
		fmt.Println(out)
		return nil
	}
	if err := utils.MakeDir(filepath.Dir(outputPath)); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to create output directory: %v\n", err)
		return err
	}
	if err := os.WriteFile(outputPath, []byte(out+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to write %s: %v\n", outputPath, err)
		return err
	}
	fmt.Fprintf(os.Stderr, "✅ Wrote %d lines to %s\n", len(doc.Lines), outputPath)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logger.GetLogger()
	printBanner()

	id := trackID
	if musicURL != "" {
		extracted, err := utils.ExtractTrackID(musicURL)
		if err != nil {
			fmt.Printf("❌ Invalid Apple Music URL: %v\n", err)
			return err
		}
		if id != "" && id != extracted {
			fmt.Println("Error: --track-id and --url point to different tracks")
			return errors.New("conflicting track ids")
		}
		id = extracted
		log.Infof("Extracted track id %s from URL", id)
	}
	if id == "" {
		fmt.Println("Error: --track-id or --url is required")
		fmt.Println("Usage: synclyrics import <file|-> --track-id <id> [--title <title>] [--artist <artist>]")
		fmt.Println("   OR: synclyrics import <file|-> --url <apple music url>")
		return synclyrics.ErrEmptyTrackID
	}

	raw, err := utils.ReadInput(args[0])
	if err != nil {
		fmt.Printf("❌ Failed to read input: %v\n", err)
		return err
	}

	fmt.Println("🔧 Initializing service...")
	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	fmt.Println("🎵 Parsing lyrics...")
	track, err := svc.ImportLyrics(ctx, id, title, artist, string(raw))
	if err != nil {
		fmt.Printf("\n❌ Failed to import lyrics: %v\n", err)
		log.Errorf("ImportLyrics failed: %v", err)
		return err
	}

	fmt.Println("\n✅ Successfully stored lyrics!")
	fmt.Printf("   Track:       %s\n", track.ID)
	if track.Title != "" {
		fmt.Printf("   Title:       %s\n", track.Title)
	}
	if track.Artist != "" {
		fmt.Printf("   Artist:      %s\n", track.Artist)
	}
	fmt.Printf("   Lines:       %d\n", len(track.Lyrics.Lines))
	if len(track.Lyrics.Songwriters) > 0 {
		fmt.Printf("   Songwriters: %s\n", strings.Join(track.Lyrics.Songwriters, ", "))
	}
	return nil
}

func runImportDir(cmd *cobra.Command, args []string) error {
	log := logger.GetLogger()
	printBanner()

	fmt.Println("🔧 Initializing service...")
	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		return err
	}
	defer svc.Close()

	fmt.Printf("📂 Importing lyrics from %s\n", args[0])
	results, err := svc.ImportDirectory(cmd.Context(), args[0])
	if err != nil {
		fmt.Printf("❌ Import aborted: %v\n", err)
		return err
	}

	if len(results) == 0 {
		fmt.Println("\n📭 No lyrics files found")
		return nil
	}

	failed := 0
	fmt.Println()
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("❌ %s: %v\n", r.TrackID, r.Err)
			continue
		}
		fmt.Printf("✅ %s: %d lines\n", r.TrackID, r.Lines)
	}

	fmt.Printf("\n📚 Imported %d/%d file(s)\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to import", failed)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	log := logger.GetLogger()

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		return err
	}
	defer svc.Close()

	track, err := svc.GetLyrics(args[0])
	if err != nil {
		if errors.Is(err, synclyrics.ErrTrackNotFound) {
			fmt.Printf("❌ No lyrics stored for track %s\n", args[0])
		} else {
			fmt.Printf("❌ Failed to load lyrics: %v\n", err)
		}
		return err
	}

	if asJSON {
		out, err := synclyrics.Serialize(&track.Lyrics)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	active := -1
	if atTime >= 0 {
		active, _ = synclyrics.ActiveLine(&track.Lyrics, atTime)
	}

	fmt.Printf("\n🎵 %s", track.ID)
	if track.Title != "" {
		fmt.Printf(" - \"%s\"", track.Title)
	}
	if track.Artist != "" {
		fmt.Printf(" by %s", track.Artist)
	}
	fmt.Println()
	if len(track.Lyrics.Songwriters) > 0 {
		fmt.Printf("   Written by %s\n", strings.Join(track.Lyrics.Songwriters, ", "))
	}
	if track.Lyrics.LeadingSilence > 0 {
		fmt.Printf("   Leading silence: %.3fs\n", track.Lyrics.LeadingSilence)
	}
	fmt.Println()

	for i, line := range track.Lyrics.Lines {
		marker := "  "
		if i == active {
			marker = "▶ "
		}
		fmt.Printf("%s[%s - %s] %s\n", marker, formatTimestamp(line.StartTime), formatTimestamp(line.EndTime), line.Text)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	log := logger.GetLogger()

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		return err
	}
	defer svc.Close()

	tracks, err := svc.ListTracks()
	if err != nil {
		fmt.Printf("❌ Failed to list tracks: %v\n", err)
		log.Errorf("ListTracks failed: %v", err)
		return err
	}

	if len(tracks) == 0 {
		fmt.Println("\n📭 No lyrics in database")
		return nil
	}

	fmt.Printf("\n📚 Found %d track(s):\n\n", len(tracks))
	for i, t := range tracks {
		name := t.Title
		if name == "" {
			name = t.ID
		}
		if t.Artist != "" {
			fmt.Printf("%d. \"%s\" by %s (ID: %s)\n", i+1, name, t.Artist, t.ID)
		} else {
			fmt.Printf("%d. \"%s\" (ID: %s)\n", i+1, name, t.ID)
		}
		fmt.Printf("   Lines: %d | Updated: %s\n\n", t.LineCount, t.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	log.Debugf("Listed %d tracks", len(tracks))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	log := logger.GetLogger()

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		return err
	}
	defer svc.Close()

	// Get track info before deletion
	track, err := svc.GetLyrics(args[0])
	if err != nil {
		fmt.Printf("❌ Track not found (ID: %s)\n", args[0])
		log.Warnf("Track %s not found: %v", args[0], err)
		return err
	}

	if err := svc.DeleteLyrics(track.ID); err != nil {
		fmt.Printf("❌ Failed to delete lyrics: %v\n", err)
		log.Errorf("DeleteLyrics failed: %v", err)
		return err
	}

	fmt.Printf("\n✅ Successfully deleted lyrics:\n")
	fmt.Printf("   ID:     %s\n", track.ID)
	fmt.Printf("   Title:  %s\n", track.Title)
	fmt.Printf("   Lines:  %d\n", len(track.Lyrics.Lines))
	return nil
}
