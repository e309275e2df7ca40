package main

import (
	"encoding/json"
	"text/tabwriter"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

// roleArg resolves an explicit role argument, falling back to the signed-in user.
func roleArg(cmdCtx *commandContext, raw string) (school.Role, error) {
	if raw != "" {
		role := school.Role(raw)
		if !role.Valid() {
			return "", usagef("unknown role %q (valid: admin, teacher, parent, student)", raw)
		}
		return role, nil
	}
	store, err := openStore(cmdCtx, nil)
	if err != nil {
		return "", err
	}
	snap := store.Snapshot()
	if !snap.SignedIn() {
		return "", usagef("not signed in; pass a role")
	}
	return snap.Role(), nil
}

func runNav(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "nav")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return usagef("nav takes at most one role")
	}
	role, err := roleArg(cmdCtx, fs.Arg(0))
	if err != nil {
		return err
	}

	if err := writef(cmdCtx.Out, "%s\n\n", viewrouter.RoleLabel(role)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tLABEL\tICON\n"); err != nil {
		return err
	}
	for _, e := range viewrouter.NavigationFor(role) {
		if err := writef(tw, "%s\t%s\t%s\n", e.ID, e.Label, e.Icon); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// quickActionTarget is where one dashboard tile lands.
type quickActionTarget struct {
	Title   string            `json:"title"`
	Section string            `json:"section"`
	Screen  viewrouter.Screen `json:"screen"`
}

type resolveOutput struct {
	viewrouter.Descriptor
	QuickActions []quickActionTarget `json:"quick_actions,omitempty"`
}

func runResolve(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet(cmdCtx, "resolve")
	asJSON := fs.Bool("json", false, "Print the descriptor as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return usagef("resolve needs a section")
	}
	role, err := roleArg(cmdCtx, fs.Arg(1))
	if err != nil {
		return err
	}

	nav := viewrouter.NewNavigator()
	nav.Navigate(fs.Arg(0))
	view := nav.View(role)
	out := resolveOutput{Descriptor: view.Descriptor}
	if view.Navigate != nil {
		out.QuickActions = followQuickActions(nav, view, role)
	}

	if *asJSON {
		enc := json.NewEncoder(cmdCtx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printResolved(cmdCtx, out)
}

// followQuickActions activates each dashboard tile through the view's
// callback and records where it lands. The navigator is left on the
// dashboard afterwards.
func followQuickActions(nav *viewrouter.Navigator, dashboard viewrouter.View, role school.Role) []quickActionTarget {
	actions := viewrouter.QuickActionsFor(role)
	out := make([]quickActionTarget, 0, len(actions))
	for _, a := range actions {
		dashboard.Navigate(a.Section)
		landed := nav.View(role)
		out = append(out, quickActionTarget{Title: a.Title, Section: landed.Section, Screen: landed.Screen})
	}
	dashboard.Navigate(dashboard.Section)
	return out
}

func printResolved(cmdCtx *commandContext, out resolveOutput) error {
	d := out.Descriptor
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Role", string(d.Role)},
		{"Section", d.Section},
		{"Screen", string(d.Screen)},
		{"Title", d.Title},
		{"Header", viewrouter.HeaderTitle(d.Role, d.Section)},
	}
	for _, r := range rows {
		if err := writef(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	if d.Placeholder {
		if err := writef(tw, "Status:\ten desarrollo\n"); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(out.QuickActions) == 0 {
		return nil
	}

	if err := writef(cmdCtx.Out, "\nQuick actions:\n"); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(cmdCtx.Out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "TILE\tSECTION\tSCREEN\n"); err != nil {
		return err
	}
	for _, a := range out.QuickActions {
		if err := writef(tw, "%s\t%s\t%s\n", a.Title, a.Section, a.Screen); err != nil {
			return err
		}
	}
	return tw.Flush()
}
