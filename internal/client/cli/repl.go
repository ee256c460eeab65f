package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status models.TaskStatus) error
	Delete(ctx context.Context, id int64) error
	ByStatus(ctx context.Context, status models.TaskStatus) error
	ByPriority(ctx context.Context, priority models.TaskPriority) error
	Search(ctx context.Context, query string) error
	Upcoming(ctx context.Context, days int) error
	Overdue(ctx context.Context) error
	Stats(ctx context.Context) error

	Token(ctx context.Context) error
	Probe(ctx context.Context) error
	Admin(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, token, probe, exit"
	helpUser      = "Available commands: (l)ist, refresh, add, edit <id>, status <id> <STATUS>, delete <id>, " +
		"bystatus <STATUS>, bypriority <PRIORITY>, search <text>, upcoming [days], overdue, stats, " +
		"whoami, token, probe, logout, exit"
	helpAdmin = helpUser + ", admin"
)

// anonymousCommands may run without a session.
var anonymousCommands = map[string]bool{
	"help": true, "register": true, "login": true, "token": true, "probe": true, "exit": true, "quit": true,
}

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "td %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if !anonymousCommands[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first (type 'help' for commands)")
			continue
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		switch {
		case a.isAdmin():
			printlnFn(helpAdmin)
		case a.isLoggedIn():
			printlnFn(helpUser)
		default:
			printlnFn(helpAnonymous)
		}
		return nil

	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)

	case "l", "list":
		return a.List(ctx)
	case "refresh":
		return a.Refresh(ctx)
	case "add":
		return a.Add(ctx)

	case "edit", "delete":
		if len(args) != 1 {
			return usage(cmd + " <id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if cmd == "edit" {
			return a.Edit(ctx, id)
		}
		return a.Delete(ctx, id)

	case "status":
		if len(args) != 2 {
			return usage("status <id> <STATUS>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		st, err := models.ParseTaskStatus(args[1])
		if err != nil {
			return err
		}
		return a.SetStatus(ctx, id, st)

	case "bystatus":
		if len(args) != 1 {
			return usage("bystatus <STATUS>")
		}
		st, err := models.ParseTaskStatus(args[0])
		if err != nil {
			return err
		}
		return a.ByStatus(ctx, st)

	case "bypriority":
		if len(args) != 1 {
			return usage("bypriority <PRIORITY>")
		}
		p, err := models.ParseTaskPriority(args[0])
		if err != nil {
			return err
		}
		return a.ByPriority(ctx, p)

	case "search":
		if len(args) == 0 {
			return usage("search <text>")
		}
		return a.Search(ctx, strings.Join(args, " "))

	case "upcoming":
		days := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("days must be a positive number, got %q", args[0])
			}
			days = n
		}
		return a.Upcoming(ctx, days)

	case "overdue":
		return a.Overdue(ctx)
	case "stats":
		return a.Stats(ctx)

	case "token":
		return a.Token(ctx)
	case "probe":
		return a.Probe(ctx)
	case "admin":
		if !a.isAdmin() {
			return fmt.Errorf("the admin view requires the %s role", models.RoleAdmin)
		}
		return a.Admin(ctx)
	}

	printlnFn("Unknown command:", cmd)
	return nil
}

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
