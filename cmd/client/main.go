package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/UnknownOlympus/hestia/internal/client"
	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/form"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/validation"
)

const usage = `commands:
  list                      refetch and print employees
  set <field> <value>       edit the draft (name, dept, active, number, email, address)
  photo <path>              attach a JPG or PNG photo
  submit                    create, or update while editing
  edit <id>                 load an employee into the draft
  delete <id>               ask to delete an employee
  confirm | cancel          answer a pending delete
  view <id> | close         show or hide one employee
  reset                     clear the draft
  show                      print the draft, errors and status
  quit`

// main is the entry point of the terminal client.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	api := client.NewEmployeeAPI(client.CreateHTTPClient(logger, cfg.Client.Timeout), cfg.Client.BaseURL, logger)
	ctrl := form.NewController(api, logger)

	ctrl.Refresh(ctx)
	if err := run(ctx, os.Stdin, os.Stdout, ctrl); err != nil {
		logger.Error("Client stopped", sl.Err(err))
		os.Exit(1)
	}
}

// run reads one command per line until quit, EOF or ctx cancellation.
func run(ctx context.Context, in io.Reader, out io.Writer, ctrl *form.Controller) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, usage)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "quit", "exit":
			return nil
		case "list":
			ctrl.Refresh(ctx)
			printEmployees(out, ctrl.State())
		case "set":
			field, value, _ := strings.Cut(arg, " ")
			ctrl.ChangeField(validation.Field(field), value)
			printErrors(out, ctrl.State())
		case "photo":
			ctrl.SelectPhoto(arg)
			ctrl.Wait()
			printErrors(out, ctrl.State())
		case "submit":
			ctrl.Wait()
			ctrl.Submit(ctx)
			printErrors(out, ctrl.State())
			printStatus(out, ctrl.State())
		case "edit":
			withID(out, arg, ctrl.BeginEdit)
			printDraft(out, ctrl.State())
		case "delete":
			withID(out, arg, ctrl.RequestDelete)
			if pending := ctrl.State().PendingDelete; pending != 0 {
				fmt.Fprintf(out, "Delete employee %d? (confirm/cancel)\n", pending)
			}
		case "confirm":
			ctrl.ConfirmDelete(ctx)
			printStatus(out, ctrl.State())
		case "cancel":
			ctrl.CancelDelete()
		case "view":
			withID(out, arg, ctrl.View)
			printViewing(out, ctrl.State())
		case "close":
			ctrl.CloseView()
		case "reset":
			ctrl.Reset()
		case "show":
			state := ctrl.State()
			printDraft(out, state)
			printErrors(out, state)
			printStatus(out, state)
		default:
			fmt.Fprintln(out, usage)
		}
	}
}

func withID(out io.Writer, arg string, fn func(int)) {
	identifier, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(out, "invalid id %q\n", arg)
		return
	}
	fn(identifier)
}

func printEmployees(out io.Writer, state form.State) {
	if len(state.Employees) == 0 {
		fmt.Fprintln(out, "No employees yet.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEPT\tACTIVE\tNUMBER\tEMAIL")
	for _, e := range state.Employees {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\t%s\n", e.ID, e.Name, e.Dept, e.Active, e.Number, e.Email)
	}
	_ = tw.Flush()
}

func printDraft(out io.Writer, state form.State) {
	mode := "new"
	if state.Editing {
		mode = "editing " + strconv.Itoa(state.TargetID)
	}

	draft := state.Draft
	fmt.Fprintf(out, "[%s] name=%q dept=%s active=%t number=%q email=%q address=%q photo=%s\n",
		mode, draft.Name, draft.Dept, draft.Active, draft.Number, draft.Email, draft.Address, photoSummary(draft.Photo))
}

func printViewing(out io.Writer, state form.State) {
	if state.Viewing == nil {
		fmt.Fprintln(out, "No such employee.")
		return
	}

	e := state.Viewing
	fmt.Fprintf(out, "#%d %s (%s)\n  active: %t\n  number: %s\n  email: %s\n  address: %s\n  photo: %s\n",
		e.ID, e.Name, e.Dept, e.Active, e.Number, e.Email, e.Address, photoSummary(e.Photo))
}

func printErrors(out io.Writer, state form.State) {
	fields := make([]validation.Field, 0, len(state.Errors))
	for field := range state.Errors {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	for _, field := range fields {
		fmt.Fprintf(out, "  %s: %s\n", field, state.Errors[field])
	}
}

func printStatus(out io.Writer, state form.State) {
	if state.Status.Text != "" {
		fmt.Fprintf(out, "[%s] %s\n", state.Status.Severity, state.Status.Text)
	}
}

func photoSummary(photo string) string {
	if photo == "" {
		return "none"
	}
	mediaType, _, _ := strings.Cut(strings.TrimPrefix(photo, "data:"), ";")
	return fmt.Sprintf("%s (%d chars)", mediaType, len(photo))
}
