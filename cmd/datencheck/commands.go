package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"datencheck/internal/duplicates"
	"datencheck/internal/ignored"
	metricsexpose "datencheck/internal/platform/metrics"
	"datencheck/internal/scan"
	"datencheck/internal/validation"
	id "datencheck/pkg/domain"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// commonFlags are shared by every command working on a tree.
type commonFlags struct {
	fs   *flag.FlagSet
	file *string
	tree *string
	json *bool
}

func newFlags(name string, withFile bool) commonFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c := commonFlags{
		fs:   fs,
		tree: fs.String("tree", "1", "Tree ID"),
		json: fs.Bool("json", false, "Output as JSON"),
	}
	if withFile {
		c.file = fs.String("file", "", "GEDCOM file to analyse (required)")
	}
	return c
}

// parse parses args and loads the GEDCOM file when the command takes one.
// A -h request returns flag.ErrHelp.
func (c commonFlags) parse(ctx context.Context, a *app, args []string) (id.TreeID, error) {
	if err := c.fs.Parse(args); err != nil {
		return 0, err
	}
	tree, err := id.ParseTreeID(*c.tree)
	if err != nil {
		return 0, err
	}
	if c.file != nil {
		if err := a.load(ctx, *c.file, tree); err != nil {
			return 0, err
		}
	}
	return tree, nil
}

func runValidate(ctx context.Context, a *app, args []string) error {
	c := newFlags("validate", true)
	xref := c.fs.String("xref", "", "Person to validate; empty validates a new person")
	rel := c.fs.String("rel", "", "Relationship of a new person (spouse skips biological checks)")
	debug := c.fs.Bool("debug", false, "Include the debug trace")
	var ov validation.Overrides
	c.fs.StringVar(&ov.Birth, "birth", "", "Birth date override")
	c.fs.StringVar(&ov.Death, "death", "", "Death date override")
	c.fs.StringVar(&ov.Burial, "burial", "", "Burial date override")
	c.fs.StringVar(&ov.Baptism, "baptism", "", "Baptism date override")
	c.fs.StringVar(&ov.Marriage, "marriage", "", "Marriage date override")
	c.fs.StringVar(&ov.Given, "given", "", "Given names, '|' separated")
	c.fs.StringVar(&ov.Surname, "surname", "", "Surnames, '|' separated")
	c.fs.StringVar(&ov.Husband, "husb", "", "Husband or father xref")
	c.fs.StringVar(&ov.Wife, "wife", "", "Wife or mother xref")
	c.fs.StringVar(&ov.Family, "fam", "", "Parent family xref")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}

	res, err := a.validation.Validate(ctx, validation.Request{
		Tree:      tree,
		Xref:      id.TrimXref(*xref),
		Overrides: ov,
		RelType:   *rel,
	})
	if err != nil {
		return err
	}
	if *c.json {
		if !*debug {
			return writeJSON(map[string]any{"issues": res.Issues})
		}
		return writeJSON(res)
	}

	if len(res.Issues) == 0 {
		fmt.Fprintln(stdout, "No issues found.")
	}
	w := newTable()
	for _, i := range res.Issues {
		fmt.Fprintf(w, "%s\t%s\t%s\n", i.Severity, i.Code, i.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if *debug {
		return writeJSON(res.Debug)
	}
	return nil
}

func runScan(ctx context.Context, a *app, args []string) error {
	c := newFlags("scan", true)
	dump := c.fs.Bool("metrics", false, "Print Prometheus metrics to stderr after the scan")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}

	enc := json.NewEncoder(stdout)
	sum, err := a.scanner.Run(ctx, tree, func(f scan.Finding) error {
		if *c.json {
			return enc.Encode(f)
		}
		for _, i := range f.Issues {
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", f.Xref, i.Code, i.Message)
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "scanned %d persons in %s: %d with issues, %d issues, %d failed\n",
		sum.Scanned, sum.Duration.Round(time.Millisecond), sum.WithIssues, sum.Issues, sum.Failed)
	if *dump {
		return metricsexpose.Dump(stderr, prometheus.DefaultGatherer)
	}
	return nil
}

func runSearch(ctx context.Context, a *app, args []string) error {
	c := newFlags("search", true)
	var q duplicates.PersonQuery
	c.fs.StringVar(&q.Given, "given", "", "Given names")
	c.fs.StringVar(&q.Surname, "surname", "", "Birth surname")
	c.fs.StringVar(&q.MarriedSurname, "married", "", "Married surname")
	sex := c.fs.String("sex", "", "M or F")
	c.fs.StringVar(&q.Birth, "birth", "", "Birth date")
	c.fs.StringVar(&q.Baptism, "baptism", "", "Baptism date")
	c.fs.StringVar(&q.Death, "death", "", "Death date")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}
	q.Tree = tree
	q.Sex = id.ParseSex(*sex)

	found, err := a.duplicates.FindPersons(ctx, q)
	if err != nil {
		return err
	}
	return writeCandidates(*c.json, found)
}

func runSiblings(ctx context.Context, a *app, args []string) error {
	c := newFlags("siblings", true)
	var q duplicates.SiblingQuery
	c.fs.StringVar(&q.Husband, "husb", "", "Father xref")
	c.fs.StringVar(&q.Wife, "wife", "", "Mother xref")
	c.fs.StringVar(&q.Given, "given", "", "Given names of the new child")
	c.fs.StringVar(&q.Surname, "surname", "", "Surname of the new child")
	c.fs.StringVar(&q.Birth, "birth", "", "Birth date of the new child")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}
	q.Tree = tree

	found, err := a.duplicates.FindSiblings(ctx, q)
	if err != nil {
		return err
	}
	return writeCandidates(*c.json, found)
}

func runFamilies(ctx context.Context, a *app, args []string) error {
	c := newFlags("families", true)
	husb := c.fs.String("husb", "", "Husband xref")
	wife := c.fs.String("wife", "", "Wife xref")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}

	fams, err := a.duplicates.FindFamilies(ctx, tree, *husb, *wife)
	if err != nil {
		return err
	}
	if *c.json {
		return writeJSON(map[string]any{"families": fams})
	}
	for _, f := range fams {
		fmt.Fprintln(stdout, f)
	}
	return nil
}

func runPairs(ctx context.Context, a *app, args []string) error {
	c := newFlags("pairs", true)
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}

	pairs, err := a.duplicates.FindAllPairs(ctx, tree)
	if err != nil {
		return err
	}
	if *c.json {
		return writeJSON(pairs)
	}
	w := newTable()
	for _, p := range pairs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID1, p.Name1, p.ID2, p.Name2, p.Distance, phoneticMark(p.PhoneticMatch))
	}
	return w.Flush()
}

func runTitles(ctx context.Context, a *app, args []string) error {
	c := newFlags("titles", true)
	kind := c.fs.String("kind", "sources", "sources or repositories")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}

	var matches []duplicates.TitleMatch
	switch *kind {
	case "sources":
		matches, err = a.duplicates.FindSources(ctx, tree)
	case "repositories":
		matches, err = a.duplicates.FindRepositories(ctx, tree)
	default:
		return fmt.Errorf("-kind must be sources or repositories, got %q", *kind)
	}
	if err != nil {
		return err
	}
	if *c.json {
		return writeJSON(matches)
	}
	w := newTable()
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID1, m.Title1, m.ID2, m.Title2, m.Reason)
	}
	return w.Flush()
}

func runDetails(ctx context.Context, a *app, args []string) error {
	c := newFlags("details", true)
	xref := c.fs.String("xref", "", "Person xref (required)")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}

	d, err := a.duplicates.PersonDetails(ctx, tree, *xref)
	if err != nil {
		return err
	}
	// Details are nested; text mode prints indented JSON as well.
	return writeJSON(d)
}

func runIgnore(ctx context.Context, a *app, args []string) error {
	c := newFlags("ignore", false)
	var rec ignored.Record
	xref := c.fs.String("xref", "", "Person xref (required)")
	c.fs.StringVar(&rec.Code, "code", "", "Issue code (required)")
	c.fs.StringVar(&rec.User, "user", currentUser(), "User recorded with the decision")
	c.fs.StringVar(&rec.Comment, "comment", "", "Free text reason")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}
	rec.TreeID = tree
	rec.Xref = id.TrimXref(*xref)

	created, err := a.ignored.Ignore(ctx, rec)
	if err != nil {
		return err
	}
	return writeOutcome(*c.json, created, "ignored", "updated")
}

func runUnignore(ctx context.Context, a *app, args []string) error {
	c := newFlags("unignore", false)
	xref := c.fs.String("xref", "", "Person xref (required)")
	code := c.fs.String("code", "", "Issue code (required)")
	user := c.fs.String("user", currentUser(), "User recorded with the decision")
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}

	removed, err := a.ignored.Unignore(ctx, tree, id.TrimXref(*xref), *code, *user)
	if err != nil {
		return err
	}
	return writeOutcome(*c.json, removed, "restored", "not ignored")
}

func runIgnored(ctx context.Context, a *app, args []string) error {
	c := newFlags("ignored", false)
	tree, err := c.parse(ctx, a, args)
	if err != nil {
		return helpOK(err)
	}

	recs, err := a.ignored.List(ctx, tree)
	if err != nil {
		return err
	}
	if *c.json {
		return writeJSON(recs)
	}
	w := newTable()
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Xref, r.Code, r.User, r.CreatedAt.Format("2006-01-02 15:04"), r.Comment)
	}
	return w.Flush()
}

func writeCandidates(asJSON bool, found []duplicates.Candidate) error {
	if asJSON {
		return writeJSON(found)
	}
	if len(found) == 0 {
		fmt.Fprintln(stdout, "No matches.")
		return nil
	}
	w := newTable()
	for _, c := range found {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			c.ID, c.Name, c.Birth, c.Death, c.Distance, phoneticMark(c.PhoneticMatch))
	}
	return w.Flush()
}

func writeOutcome(asJSON, changed bool, yes, no string) error {
	if asJSON {
		return writeJSON(map[string]bool{"changed": changed})
	}
	if changed {
		fmt.Fprintln(stdout, yes)
	} else {
		fmt.Fprintln(stdout, no)
	}
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
}

func phoneticMark(match bool) string {
	if match {
		return "phonetic"
	}
	return ""
}

func currentUser() string {
	if u := strings.TrimSpace(os.Getenv("USER")); u != "" {
		return u
	}
	return "cli:" + strconv.Itoa(os.Getuid())
}

// helpOK turns a -h request into a clean exit.
func helpOK(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}
