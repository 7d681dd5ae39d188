package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"syscall"

	"golang.org/x/term"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/services/creds"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf  *core.Config
	store *creds.FileStore
	http  *http.Client
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -username USERNAME - log into the school backend; the password will be prompted")
	fmt.Println("  logout                   - drop the cached session token")
	fmt.Println("  ping                     - check the school backend is reachable with the cached session")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginUname := loginCmd.String("username", "", "The dashboard username. The password will be prompted next.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginUname, string(pwd))
	case "logout":
		return cli.store.Clear()
	case "ping":
		return cli.ping()
	default:
		cli.printUsage()
		return errHelp
	}
}
