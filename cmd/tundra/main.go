package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/op/go-logging"
)

var (
	// buildVersion is overridden at build time with
	// -ldflags "-X main.buildVersion=...".
	buildVersion = "(devel)"

	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	version    = flag.Bool("version", false, "only print version and exit")

	log = logging.MustGetLogger("tundra")
)

func main() {
	flag.Parse()
	if *version {
		fmt.Printf("tundra %v\n", buildVersion)
		return
	}

	format := logging.MustStringFormatter(`%{time:15:04:05.000} %{level:.4s} %{message}`)
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), format)
	logging.SetBackend(backend)
	logging.SetLevel(logging.WARNING, "tundra")

	fmt.Printf("tundra %v, built with %v, running on %v\n",
		buildVersion, runtime.Version(), runtime.GOARCH)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	bio := bufio.NewReader(os.Stdin)
	uci := NewUCI()
	for {
		line, _, err := bio.ReadLine()
		if err != nil {
			log.Warningf("stdin closed: %v", err)
			break
		}
		if err := uci.Execute(string(line)); err != nil {
			if err == errQuit {
				break
			}
			uci.debugInfo(fmt.Sprintf("error: %v for line %q", err, string(line)))
		}
	}
}
