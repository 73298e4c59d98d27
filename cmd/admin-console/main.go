package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/vendaro/admin-console/api"
	"github.com/vendaro/admin-console/auth"
	"github.com/vendaro/admin-console/internal/config"
	"github.com/vendaro/admin-console/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()
	c := config.New()

	if len(args) == 0 || args[0] == "help" {
		displayAppname(c.GetAppName())
		usage()
		return nil
	}

	app, err := newApp(c)
	if err != nil {
		return err
	}
	return app.dispatch(args)
}

// app wires the session store, transport, and endpoint clients together.
type app struct {
	config  config.Config
	store   *session.Store
	auth    *auth.Service
	api     *api.Client
	log     zerolog.Logger
	expired bool
}

func newApp(c config.Config) (*app, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if c.GetEnv() != "DEV" {
		logger = logger.Level(zerolog.WarnLevel)
	}

	storage, err := session.NewFileStorage(c.GetCredentialsFile())
	if err != nil {
		return nil, err
	}
	store, err := session.NewStore(storage, session.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	a := &app{config: c, store: store, log: logger}

	a.api = api.New(c.GetAPIBaseURL(),
		api.WithHTTPClient(&http.Client{Timeout: c.GetHTTPTimeout()}),
		api.WithCredentials(store),
		api.WithSessionExpired(a.redirectToLogin),
		api.WithLogger(logger),
	)

	a.auth, err = auth.NewService(a.api, store, auth.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return a, nil
}

// redirectToLogin is the console's stand-in for the SPA's navigation to the
// login view: it tells the operator to re-authenticate.
func (a *app) redirectToLogin() {
	if a.expired {
		return
	}
	a.expired = true
	fmt.Fprintln(os.Stderr, "Session expired. Please login again: admin-console login -email <email>")
}

func (a *app) dispatch(args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.cmdLogin(rest)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami()
	case "validate":
		return a.cmdValidate(rest)
	case "dashboard":
		return a.cmdDashboard(rest)
	case "vendors":
		return a.cmdVendors(rest)
	case "orders":
		return a.cmdOrders(rest)
	case "users":
		return a.cmdUsers(rest)
	case "admins":
		return a.cmdAdmins(rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Print(`Usage: admin-console <command> [flags]

Commands:
  login      -email <email> [-password <password>]
  logout
  whoami
  validate
  dashboard
  vendors    list | unapproved | approve -id <id> | reject -id <id>
  orders     list [-status <status>] | show -id <id> | status -id <id> -to <status> | cancel -id <id>
  users      list [-search <q>] | suspend -id <id> -duration <d> -reason <r> | block -id <id> -reason <r> | unblock -id <id>
  admins     list | me | create -name <n> -email <e> -password <p> | delete -id <id>
  help
`)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
