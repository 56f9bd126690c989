package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/judyrop/sns-catalog/client"
	"github.com/judyrop/sns-catalog/codec"
	"github.com/judyrop/sns-catalog/form"
	"github.com/judyrop/sns-catalog/listfilter"
	"github.com/judyrop/sns-catalog/views"
)

// entity describes one admin section: how to reach it, draw it, and edit it
// through its dialog.
type entity[T, C, U any, D form.Requests[C, U]] struct {
	name    string
	single  string
	res     func(*client.Client) *client.Resource[T, C, U]
	table   func(views.Styles, []T) string
	detail  func(views.Styles, T) string
	blank   func() D
	draftOf func(T) D
	fields  func(fs *pflag.FlagSet, d *D)
	active  func(d *D) *bool

	// filters binds the list flags and returns the predicates they select.
	filters func(fs *pflag.FlagSet) func() []listfilter.Predicate[T]
	// view replaces the plain table listing.
	view  func(ctx context.Context, a *app, preds []listfilter.Predicate[T]) error
	extra []func(a *app) *cobra.Command
}

func (e entity[T, C, U, D]) command(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: e.name, Short: "Manage " + e.name}
	cmd.AddCommand(e.listCmd(a), e.showCmd(a), e.createCmd(a), e.updateCmd(a), e.toggleCmd(a), e.deleteCmd(a))
	for _, extra := range e.extra {
		cmd.AddCommand(extra(a))
	}
	return cmd
}

func (e entity[T, C, U, D]) list(ctx context.Context, a *app, preds []listfilter.Predicate[T]) error {
	if e.view != nil {
		return e.view(ctx, a, preds)
	}
	items, err := e.res(a.client).List(ctx, everything)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, e.table(a.styles, listfilter.Apply(items, preds...)))
	return nil
}

func (e entity[T, C, U, D]) modal(a *app) *form.Modal[D] {
	return form.ForResource[D](e.res(a.client), func(ctx context.Context) error {
		return e.list(ctx, a, nil)
	})
}

func (e entity[T, C, U, D]) listCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "list", Short: "List " + e.name, Args: cobra.NoArgs}
	var selected func() []listfilter.Predicate[T]
	if e.filters != nil {
		selected = e.filters(cmd.Flags())
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var preds []listfilter.Predicate[T]
		if selected != nil {
			preds = selected()
		}
		return e.list(cmd.Context(), a, preds)
	}
	return cmd
}

func (e entity[T, C, U, D]) showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one " + e.single,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := e.res(a.client).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, e.detail(a.styles, *item))
			return nil
		},
	}
}

func (e entity[T, C, U, D]) createCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "create", Short: "Add a " + e.single, Args: cobra.NoArgs}
	help := e.blank()
	e.fields(cmd.Flags(), &help)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		draft := e.blank()
		if err := applyFlags(cmd.Flags(), func(fs *pflag.FlagSet) { e.fields(fs, &draft) }); err != nil {
			return err
		}
		m := e.modal(a)
		m.OpenCreate(draft)
		if err := m.Submit(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s created\n", capitalize(e.single))
		return nil
	}
	return cmd
}

func (e entity[T, C, U, D]) editFields(fs *pflag.FlagSet, d *D) {
	e.fields(fs, d)
	active := e.active(d)
	fs.BoolVar(active, "active", *active, "visible on the public site")
}

func (e entity[T, C, U, D]) updateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a " + e.single + "; only the given flags change",
		Args:  cobra.ExactArgs(1),
	}
	help := e.blank()
	e.editFields(cmd.Flags(), &help)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		item, err := e.res(a.client).Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		draft := e.draftOf(*item)
		if err := applyFlags(cmd.Flags(), func(fs *pflag.FlagSet) { e.editFields(fs, &draft) }); err != nil {
			return err
		}
		m := e.modal(a)
		m.OpenEdit(id, draft)
		if err := m.Submit(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s %d updated\n", capitalize(e.single), id)
		return nil
	}
	return cmd
}

func (e entity[T, C, U, D]) toggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Switch a " + e.single + " between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := e.res(a.client).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			draft := e.draftOf(*item)
			active := e.active(&draft)
			*active = !*active

			m := e.modal(a)
			m.OpenEdit(id, draft)
			if err := m.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %d is now %s\n", capitalize(e.single), id, a.styles.Status(*active))
			return nil
		},
	}
}

func (e entity[T, C, U, D]) deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + e.single,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.res(a.client).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %d deleted\n", capitalize(e.single), id)
			return nil
		},
	}
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func optional(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

// applyFlags copies the flags set on the command line onto a draft. bind
// declares the draft's flags on the set it is given.
func applyFlags(set *pflag.FlagSet, bind func(*pflag.FlagSet)) error {
	dst := pflag.NewFlagSet("draft", pflag.ContinueOnError)
	bind(dst)

	var err error
	set.Visit(func(f *pflag.Flag) {
		target := dst.Lookup(f.Name)
		if err != nil || target == nil {
			return
		}
		if src, ok := f.Value.(pflag.SliceValue); ok {
			if to, ok := target.Value.(pflag.SliceValue); ok {
				err = to.Replace(src.GetSlice())
				return
			}
		}
		err = target.Value.Set(f.Value.String())
	})
	return err
}

// pairsFlag is a repeatable key=value flag filling specification rows.
type pairsFlag struct {
	pairs *codec.Pairs
}

func newPairsFlag(p *codec.Pairs) *pairsFlag { return &pairsFlag{pairs: p} }

func (f *pairsFlag) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	*f.pairs = append(*f.pairs, codec.Pair{Key: key, Value: strings.TrimSpace(value)})
	return nil
}

func (f *pairsFlag) Type() string { return "key=value" }

func (f *pairsFlag) String() string {
	return "[" + strings.Join(f.GetSlice(), ",") + "]"
}

func (f *pairsFlag) Append(s string) error { return f.Set(s) }

func (f *pairsFlag) Replace(items []string) error {
	*f.pairs = codec.Pairs{}
	for _, s := range items {
		if err := f.Set(s); err != nil {
			return err
		}
	}
	return nil
}

func (f *pairsFlag) GetSlice() []string {
	out := make([]string, 0, len(*f.pairs))
	for _, p := range *f.pairs {
		if p.Key == "" {
			continue
		}
		out = append(out, p.Key+"="+p.Value)
	}
	return out
}
