package flags

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config holds all command-line configuration
type Config struct {
	Port    string
	DataDir string
	Storage string // "file" or "postgres"
	Help    bool
}

// DefaultConfig returns default configuration values
func DefaultConfig() Config {
	return Config{
		Port:    "8080",
		DataDir: "data",
		Storage: "file",
		Help:    false,
	}
}

// Parse parses command-line flags and returns configuration
func Parse() Config {
	config := DefaultConfig()

	var (
		port    = flag.String("port", config.Port, "Port number")
		dataDir = flag.String("data-dir", config.DataDir, "Directory for the file-backed store")
		storage = flag.String("storage", config.Storage, "Storage backend: file or postgres")
		help    = flag.Bool("help", false, "Show this screen")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Cafe Ordering System\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  cafe-order [--port <N>] [--data-dir <dir>] [--storage <backend>]\n")
		fmt.Fprintf(os.Stderr, "  cafe-order --help\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --help            Show this screen.\n")
		fmt.Fprintf(os.Stderr, "  --port N          Port number (1-65535).\n")
		fmt.Fprintf(os.Stderr, "  --data-dir DIR    Directory for the file-backed store.\n")
		fmt.Fprintf(os.Stderr, "  --storage BACKEND Storage backend: file or postgres.\n")
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	if err := validatePort(*port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := validateStorage(*storage); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return Config{
		Port:    *port,
		DataDir: *dataDir,
		Storage: *storage,
		Help:    *help,
	}
}

// validatePort validates the port number
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port number '%s': must be a number", port)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("port number %d is out of range: must be between 1 and 65535", portNum)
	}

	if portNum < 1024 {
		fmt.Fprintf(os.Stderr, "Warning: Port %d is a privileged port (1-1023). You may need administrator privileges.\n", portNum)
	}

	return nil
}

func validateStorage(storage string) error {
	if storage != "file" && storage != "postgres" {
		return fmt.Errorf("invalid storage backend '%s': must be 'file' or 'postgres'", storage)
	}
	return nil
}

// Validate validates the parsed configuration
func (c Config) Validate() error {
	if err := validatePort(c.Port); err != nil {
		return err
	}
	if err := validateStorage(c.Storage); err != nil {
		return err
	}
	if c.Storage == "file" && c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty when using file storage")
	}
	return nil
}
