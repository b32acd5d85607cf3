// Package cli is the non-interactive front of mesa: one subcommand per
// repository operation, printing rendered nodes to stdout.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lmoreno/mesa/internal/app"
	"github.com/lmoreno/mesa/internal/config"
	"github.com/lmoreno/mesa/internal/model"
	"github.com/lmoreno/mesa/internal/repo"
	"github.com/lmoreno/mesa/internal/tui"
	"github.com/lmoreno/mesa/internal/ui"
	"github.com/lmoreno/mesa/internal/view"
	"github.com/lmoreno/mesa/pkg/logger"
)

// Options tune behavior from root flags.
type Options struct {
	Theme string // "classic" or "mono"
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	ui.SetTheme(opt.Theme)
	if len(args) == 0 {
		PrintHelp()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	log := logger.New(cfg.Log.Path, cfg.Log.Level)
	defer log.Sync() //nolint:errcheck

	a, err := app.New(cfg, log)
	if err != nil {
		ui.Fail("open store: " + err.Error())
		return 1
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		// The TUI loads each collection with its own command.
		if err := tui.Run(a); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0

	case "menu":
		return runMenu(a, rest)
	case "reserve":
		return runReserve(a, rest)
	case "review":
		return runReview(a, rest)
	case "contact":
		return runContact(a, rest)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`mesa - restaurant front desk in your terminal

Usage:
  mesa <subcommand> [args]

Subcommands:
  ls                                  Interactive view (all tabs)
  menu ls [category]                  List dishes, optionally one category
  menu add <name> <price> <category> [image]
  menu show <id>                      Show one dish in detail
  menu rm <id>                        Remove a dish by id
  menu seed                           Re-fetch the menu seed if the menu is empty
  reserve ls                          List reservations
  reserve add <name> <date> <guests>
  reserve rm <id>
  review ls                           List reviews
  review add <name> <text...>
  review rm <id>
  contact show                        Show the contact profile
  contact set <name> <email>          Create or replace the contact profile

Examples:
  mesa menu add "Paella" 12.50 Arroces
  mesa reserve add "Ana" 2026-09-01 4
  mesa review add "Luis" "great arroz negro"
  mesa contact set "Ana" ana@example.com
`)
}

// ---------- menu ----------

func runMenu(a *app.App, args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: mesa menu <ls|show|add|rm|seed>")
		return 2
	}
	switch args[0] {
	case "ls":
		a.Menu.Load(context.Background())
		warnNotice(a.Menu.Notice())
		cat := ""
		if len(args) > 1 {
			cat = args[1]
		}
		printNodes(view.Render(a.Menu.Items(), view.Filter{Category: cat}, view.MenuNode, "no dishes yet"))
		return 0

	case "add":
		if len(args) < 4 {
			ui.Fail("usage: mesa menu add <name> <price> <category> [image]")
			return 2
		}
		image := ""
		if len(args) > 4 {
			image = args[4]
		}
		a.Menu.Load(context.Background())
		rec, err := a.Menu.Create(model.ParseMenuItem(args[1], args[2], args[3], image))
		if err != nil {
			ui.Fail("add: " + err.Error())
			return 2
		}
		warnNotice(a.Menu.Notice())
		ui.OK("added " + rec.Name + " (" + rec.ID + ")")
		return 0

	case "show":
		if len(args) != 2 {
			ui.Fail("usage: mesa menu show <id>")
			return 2
		}
		a.Menu.Load(context.Background())
		item, ok := a.Menu.Find(args[1])
		if !ok {
			ui.Fail("no dish with id " + args[1])
			return 1
		}
		lines := []string{
			ui.Current().Title.Render(view.Sanitize(item.Name)),
			"price:    " + item.FormatPrice(),
			"category: " + view.Sanitize(item.Category),
		}
		if item.Image != "" {
			lines = append(lines, "image:    "+view.Sanitize(item.Image))
		}
		fmt.Println(ui.Panel(lines))
		return 0

	case "rm":
		if len(args) != 2 {
			ui.Fail("usage: mesa menu rm <id>")
			return 2
		}
		return doRemove(a.Menu, args[1])

	case "seed":
		a.Menu.Load(context.Background())
		switch a.Menu.State() {
		case repo.StateSeeded:
			ui.OK(fmt.Sprintf("seeded %d dishes", a.Menu.Len()))
			return 0
		case repo.StateLocal:
			ui.Fail("menu already has local data; remove it first to re-seed")
			return 2
		default:
			ui.Fail("seed fetch failed, menu left empty (see log)")
			return 1
		}
	}
	ui.Fail("usage: mesa menu <ls|show|add|rm|seed>")
	return 2
}

// ---------- reservations ----------

func runReserve(a *app.App, args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: mesa reserve <ls|add|rm>")
		return 2
	}
	a.Reservations.Load(context.Background())
	switch args[0] {
	case "ls":
		printNodes(view.Render(a.Reservations.Items(), view.Filter{}, view.ReservationNode, "no reservations yet"))
		return 0
	case "add":
		if len(args) != 4 {
			ui.Fail("usage: mesa reserve add <name> <date> <guests>")
			return 2
		}
		rec, err := a.Reservations.Create(model.ParseReservation(args[1], args[2], args[3]))
		if err != nil {
			ui.Fail("add: " + err.Error())
			return 2
		}
		warnNotice(a.Reservations.Notice())
		ui.OK("reserved for " + rec.Name + " (" + rec.ID + ")")
		return 0
	case "rm":
		if len(args) != 2 {
			ui.Fail("usage: mesa reserve rm <id>")
			return 2
		}
		return doRemove(a.Reservations, args[1])
	}
	ui.Fail("usage: mesa reserve <ls|add|rm>")
	return 2
}

// ---------- reviews ----------

func runReview(a *app.App, args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: mesa review <ls|add|rm>")
		return 2
	}
	a.Reviews.Load(context.Background())
	switch args[0] {
	case "ls":
		printNodes(view.Render(a.Reviews.Items(), view.Filter{}, view.ReviewNode, "no reviews yet"))
		return 0
	case "add":
		if len(args) < 3 {
			ui.Fail("usage: mesa review add <name> <text...>")
			return 2
		}
		rec, err := a.Reviews.Create(model.ParseReview(args[1], strings.Join(args[2:], " ")))
		if err != nil {
			ui.Fail("add: " + err.Error())
			return 2
		}
		warnNotice(a.Reviews.Notice())
		ui.OK("thanks, " + rec.Name)
		return 0
	case "rm":
		if len(args) != 2 {
			ui.Fail("usage: mesa review rm <id>")
			return 2
		}
		return doRemove(a.Reviews, args[1])
	}
	ui.Fail("usage: mesa review <ls|add|rm>")
	return 2
}

// ---------- contact ----------

func runContact(a *app.App, args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: mesa contact <show|set>")
		return 2
	}
	a.Contact.Load()
	switch args[0] {
	case "show":
		profile, ok := a.Contact.Get()
		if !ok {
			fmt.Println(ui.Current().Muted.Render("no contact profile yet"))
			return 0
		}
		fmt.Println(ui.Panel([]string{
			"name:  " + view.Sanitize(profile.Name),
			"email: " + view.Sanitize(profile.Email),
		}))
		return 0
	case "set":
		if len(args) != 3 {
			ui.Fail("usage: mesa contact set <name> <email>")
			return 2
		}
		if err := a.Contact.Save(model.ParseContactProfile(args[1], args[2])); err != nil {
			ui.Fail("set: " + err.Error())
			return 2
		}
		warnNotice(a.Contact.Notice())
		ui.OK("message sent, thanks for getting in touch")
		return 0
	}
	ui.Fail("usage: mesa contact <show|set>")
	return 2
}

// ---------- shared helpers ----------

func doRemove[T repo.Record[T]](r *repo.Repository[T], id string) int {
	r.Load(context.Background())
	if r.Remove(id) == 0 {
		ui.Warn("nothing to remove: " + id)
		return 0
	}
	warnNotice(r.Notice())
	ui.OK("removed")
	return 0
}

func printNodes(nodes []view.Node) {
	t := ui.Current()
	for _, n := range nodes {
		if n.ID == "" {
			fmt.Println(t.Muted.Render(n.Text))
			continue
		}
		fmt.Println(t.Bullet + " " + n.Text + "  " + t.Muted.Render(n.ID))
	}
}

func warnNotice(notice string) {
	if notice != "" {
		ui.Warn(notice)
	}
}
