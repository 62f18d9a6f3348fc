package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lista/internal/client"
)

func main() {
	addr := flag.String("addr", envOr("LISTA_ADDR", "http://localhost:8080"), "list server base URL")
	join := flag.String("join", "", "join a shared list: a share token or a full share URL")
	leave := flag.Bool("leave", false, "leave the shared list and return to your own")
	statePath := flag.String("state", "", "override the state file location")
	flag.Parse()

	if err := run(*addr, *join, *leave, *statePath); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(addr, join string, leave bool, statePath string) error {
	if statePath == "" {
		var err error
		statePath, err = client.DefaultStatePath()
		if err != nil {
			return err
		}
	}

	kv, err := client.NewFileKV(statePath)
	if err != nil {
		return err
	}
	resolver := client.NewResolver(kv)

	if leave {
		if err := resolver.LeaveShared(); err != nil {
			return err
		}
	}
	if join != "" {
		token := client.ExtractShareToken(join)
		if token == "" {
			return fmt.Errorf("no share token in %q", join)
		}
		if err := resolver.Join(token); err != nil {
			return err
		}
	}

	api, err := client.NewClient(addr)
	if err != nil {
		return err
	}

	token, err := resolver.ActiveToken()
	if err != nil {
		return err
	}

	m := newModel(api, resolver, token)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
