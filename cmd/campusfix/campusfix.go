package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/campusfix/campusfix/server"
	"github.com/coreos/go-systemd/daemon"
)

func main() {
	parser := argparse.NewParser("campusfix", "Facilities issue tracking server")
	configFile := parser.String("c", "config", &argparse.Options{Help: "Config file path", Default: "campusfix.json"})
	addr := parser.String("", "addr", &argparse.Options{Help: "Override listen address from the config file", Default: ""})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	s, err := server.NewServer(*configFile)
	if err != nil {
		fmt.Printf("Failed to start server: %v\n", err)
		os.Exit(1)
	}
	s.ListenForKillSignals()

	// Tell systemd that we're alive
	daemon.SdNotify(false, daemon.SdNotifyReady)

	listenAddr := s.Addr()
	if *addr != "" {
		listenAddr = *addr
	}
	if err := s.ListenHTTP(listenAddr); err != nil {
		s.Log.Infof("ListenHTTP returned: %v", err)
	}
}
