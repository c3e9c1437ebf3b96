package synclyrics

type Config struct {
	DBPath            string
	Logger            Logger
	Storage           Storage
	StrictSongwriters bool
	IDGenerator       func() string
	ImportWorkers     int
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithStrictSongwriters makes the parser reject a songwriter list whose
// element is not named "songwriters".
func WithStrictSongwriters(strict bool) Option {
	return func(c *Config) {
		c.StrictSongwriters = strict
	}
}

// WithIDGenerator replaces the UUID generator used for line ids.
func WithIDGenerator(gen func() string) Option {
	return func(c *Config) {
		c.IDGenerator = gen
	}
}

// WithImportWorkers bounds how many files ImportDirectory parses at once.
func WithImportWorkers(n int) Option {
	return func(c *Config) {
		c.ImportWorkers = n
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:        "synclyrics.sqlite3",
		Logger:        nil,
		ImportWorkers: 4,
	}
}
