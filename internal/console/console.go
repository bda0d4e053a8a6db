// Package console runs the interactive menu loop over a register.Store.
// The controller owns no table state: every change goes through the store
// and every prompt is read from the controller's input.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	register "github.com/ideamans/go-register"
)

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	hunk    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return styles{
		title:   base.Bold(true),
		success: base.Foreground(lipgloss.Color("10")),
		failure: base.Foreground(lipgloss.Color("9")),
		added:   base.Foreground(lipgloss.Color("2")),
		removed: base.Foreground(lipgloss.Color("1")),
		hunk:    base.Foreground(lipgloss.Color("6")),
	}
}

// Controller reads menu choices and prompts from in and writes the session
// to out
type Controller struct {
	store  *register.Store
	in     *bufio.Reader
	out    io.Writer
	styles styles
	logger *slog.Logger

	diffName string // non-empty enables the diff preview
}

// Option configures a Controller
type Option func(*Controller)

// WithDiff adds a unified diff of the pending changes to the save preview,
// labelled with name
func WithDiff(name string) Option {
	return func(c *Controller) {
		c.diffName = name
	}
}

// WithRenderer overrides the lipgloss renderer, which is otherwise bound to
// out
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(c *Controller) {
		c.styles = newStyles(r)
	}
}

// New creates a controller over a loaded store
func New(store *register.Store, in io.Reader, out io.Writer, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
		logger: slog.Default().With("component", "console"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run prints the table stats and then serves the menu until the user
// chooses 0 or the input ends
func (c *Controller) Run(ctx context.Context) error {
	c.printStats()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := c.menu()
		if err != nil {
			return c.finish(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.printAll()
		case "2":
			err = c.add()
			if err == nil {
				err = c.save(ctx)
			}
		case "3":
			err = c.edit()
			if err == nil {
				err = c.save(ctx)
			}
		case "4":
			err = c.delete()
			if err == nil {
				err = c.save(ctx)
			}
		case "5":
			err = c.search()
		case "0":
			c.println("Thank you!")
			return nil
		default:
			c.println(c.styles.failure.Render("Invalid option."))
		}

		if err != nil {
			return c.finish(err)
		}
	}
}

// finish turns the end of input into a normal exit
func (c *Controller) finish(err error) error {
	if errors.Is(err, io.EOF) {
		c.logger.Debug("input closed", "dirty", c.store.Dirty())
		return nil
	}
	return err
}

func (c *Controller) menu() (string, error) {
	c.println()
	c.println(c.styles.title.Render("Choose an option:"))
	c.println("1. Print out a Register")
	c.println("2. Add a record")
	c.println("3. Edit an existing record")
	c.println("4. Delete a record")
	c.println("5. Find a record")
	c.println("0. Exit")
	return c.prompt("Your choice: ")
}

func (c *Controller) printStats() {
	stats := c.store.Stats()
	c.println()
	c.println(fmt.Sprintf("Total rows: %d", stats.Rows))
	c.println()
	c.println("Schema:")
	for _, h := range stats.Headers {
		c.println("- " + h)
	}
}

func (c *Controller) printAll() {
	for _, line := range register.FormatList(c.store.Records()) {
		c.println(line)
	}
}

func (c *Controller) add() error {
	headers := c.store.Headers()
	values := make([]string, 0, len(headers))
	for _, h := range headers {
		v, err := c.prompt(h + ": ")
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	c.store.Add(values)
	c.println(c.styles.success.Render("Record added."))
	return nil
}

func (c *Controller) edit() error {
	row, ok, err := c.promptRow("Enter row number to edit: ")
	if err != nil || !ok {
		return err
	}

	record, err := c.store.Record(row)
	if err != nil {
		c.println(c.styles.failure.Render("Invalid index."))
		return nil
	}
	c.println("Current values:")
	c.println(record.String())

	headers := c.store.Headers()
	values := make([]string, len(headers))
	for i, h := range headers {
		v, err := c.prompt(fmt.Sprintf("%s (current: %s): ", h, record.Value(i)))
		if err != nil {
			return err
		}
		values[i] = v
	}

	if err := c.store.Edit(row, values); err != nil {
		c.println(c.styles.failure.Render("Invalid index."))
		return nil
	}
	c.println(c.styles.success.Render("Record updated."))
	return nil
}

func (c *Controller) delete() error {
	row, ok, err := c.promptRow("Enter row number to delete: ")
	if err != nil || !ok {
		return err
	}

	if err := c.store.Delete(row); err != nil {
		c.println(c.styles.failure.Render("Invalid index."))
		return nil
	}
	c.println(c.styles.success.Render("Record deleted."))
	return nil
}

func (c *Controller) search() error {
	text, err := c.prompt("Enter text to search: ")
	if err != nil {
		return err
	}

	found := c.store.Search(text)
	c.println()
	c.println(fmt.Sprintf("%d result(s) found:", len(found)))
	for _, r := range found {
		c.println(r.String())
	}
	return nil
}

func (c *Controller) save(ctx context.Context) error {
	if !c.store.Dirty() {
		c.println("No changes to save.")
		return nil
	}

	c.println()
	c.println("Preview of what will be saved:")
	c.printAll()
	if summary := register.Summary(c.store.Pending()); summary != "" {
		c.println("Changes: " + summary)
	}
	if c.diffName != "" {
		c.printDiff(c.store.Diff(c.diffName))
	}

	result, err := c.store.Save(ctx, c.confirm)
	switch {
	case errors.Is(err, io.EOF):
		return err
	case result == register.SaveCancelled:
		c.println("Cancelled. File not modified.")
		if err != nil {
			c.logger.Error("reload after cancel failed", "error", err)
			c.println(c.styles.failure.Render("Reload failed: " + err.Error()))
		}
	case err != nil:
		c.logger.Error("save failed", "error", err)
		c.println(c.styles.failure.Render("Save failed: " + err.Error()))
	case result == register.SaveCommitted:
		c.println(c.styles.success.Render("Changes saved."))
	}
	return nil
}

// confirm accepts only a trimmed, case-insensitive "y"
func (c *Controller) confirm() (bool, error) {
	c.println()
	answer, err := c.prompt("Do you want to overwrite the file with these changes? (y/n): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func (c *Controller) printDiff(diff string) {
	if diff == "" {
		return
	}
	c.println()
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			c.println(c.styles.title.Render(line))
		case strings.HasPrefix(line, "+"):
			c.println(c.styles.added.Render(line))
		case strings.HasPrefix(line, "-"):
			c.println(c.styles.removed.Render(line))
		case strings.HasPrefix(line, "@@"):
			c.println(c.styles.hunk.Render(line))
		default:
			c.println(line)
		}
	}
}

// promptRow reads a 1-based row number. ok is false when the answer is not
// a number, in which case "Invalid index." has already been printed.
func (c *Controller) promptRow(label string) (int, bool, error) {
	answer, err := c.prompt(label)
	if err != nil {
		return 0, false, err
	}

	row, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		c.println(c.styles.failure.Render("Invalid index."))
		return 0, false, nil
	}
	return row, true, nil
}

// prompt writes label and reads one line without its line ending. It
// returns io.EOF only when the input ended before any text was read.
func (c *Controller) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		c.println()
		return "", io.EOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Controller) println(s ...string) {
	fmt.Fprintln(c.out, strings.Join(s, ""))
}
