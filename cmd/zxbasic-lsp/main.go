package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	glspserver "github.com/tliron/glsp/server"

	"github.com/stefdev49/vs-zx-sub002/internal/lsp"
	"github.com/stefdev49/vs-zx-sub002/internal/server"
)

const name = "zxbasic-lsp"

var (
	tcpMode  bool
	tcpPort  int
	logLevel string
	logFile  string
)

var log = commonlog.GetLogger("zxbasic.main")

func init() {
	flag.BoolVar(&tcpMode, "tcp", false, "Run server in TCP mode (for debugging)")
	flag.IntVar(&tcpPort, "port", 8765, "TCP port to listen on (used with -tcp)")
	flag.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "%s version %s\n\n", name, lsp.Version)
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", name)
	fmt.Fprintf(os.Stderr, "       %s check [-dialect d] [-strict] [-max-line-length n] file...\n", name)
	fmt.Fprintf(os.Stderr, "       %s format [-w] [-renumber] [-increment n] file...\n", name)
	fmt.Fprintf(os.Stderr, "       %s version\n\n", name)
	fmt.Fprintf(os.Stderr, "Language Server Protocol implementation for ZX Spectrum BASIC\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("%s version %s\n", name, lsp.Version)
		return
	case "check":
		os.Exit(check(flag.Args()[1:], os.Stdout, os.Stderr))
	case "format":
		os.Exit(formatFiles(flag.Args()[1:], os.Stdout, os.Stderr))
	case "":
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	if err := setupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	lsp.SetServer(server.New())
	glspServer := glspserver.NewServer(lsp.NewHandler(), name, logLevel == "debug")

	if tcpMode {
		address := fmt.Sprintf("127.0.0.1:%d", tcpPort)
		log.Noticef("%s %s listening on %s", name, lsp.Version, address)
		if err := glspServer.RunTCP(address); err != nil {
			log.Criticalf("TCP server error: %s", err)
			os.Exit(1)
		}
		return
	}

	log.Noticef("%s %s on stdio", name, lsp.Version)
	if err := glspServer.RunStdio(); err != nil {
		log.Criticalf("STDIO server error: %s", err)
		os.Exit(1)
	}
}

// setupLogging configures the commonlog backend from the command-line
// flags. Logs never go to stdout, which carries the protocol in stdio mode.
func setupLogging() error {
	verbosity, err := verbosityFor(logLevel)
	if err != nil {
		return err
	}

	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity, path)
	return nil
}

func verbosityFor(level string) (int, error) {
	switch level {
	case "none":
		return -4, nil
	case "error":
		return 0, nil
	case "warn", "warning":
		return 1, nil
	case "info":
		return 3, nil
	case "debug":
		return 4, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}
