// Command demo walks through the string, slice, document and validation
// helpers, then runs them together as a small user-cleaning pipeline.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/utkarsh5026/asynckit/internal/cli"
	"github.com/utkarsh5026/asynckit/objutil"
	"github.com/utkarsh5026/asynckit/sliceutil"
	"github.com/utkarsh5026/asynckit/textutil"
	"github.com/utkarsh5026/asynckit/validate"
)

type user struct {
	Name  string
	Email string
	Role  string
}

// processed is the outcome of processUsers.
type processed struct {
	Users  []user
	ByRole map[string][]user
}

var rawUsers = []user{
	{Name: "john doe", Email: "john@example.com", Role: "admin"},
	{Name: "jane smith", Email: "invalid-email", Role: "user"},
	{Name: "bob wilson", Email: "bob@example.com", Role: "user"},
	{Name: "john doe", Email: "john@example.com", Role: "admin"},
	{Name: "alice brown", Email: "alice@example.com", Role: "moderator"},
	{Name: "charlie davis", Email: "charlie@example.com", Role: "user"},
}

func main() {
	if err := run(os.Stdout); err != nil {
		cli.Fail(err)
	}
}

func run(out io.Writer) error {
	separator := strings.Repeat("=", 50)
	_, _ = cli.Bold.Fprintln(out, "\nasynckit utility demo")
	_, _ = fmt.Fprintln(out, separator)

	stringDemo(out)
	arrayDemo(out)
	if err := objectDemo(out); err != nil {
		return err
	}
	validationDemo(out)
	if err := pipelineDemo(out); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, separator)
	_, _ = cli.Green.Fprintln(out, "✓ All demonstrations completed!")
	return nil
}

func heading(out io.Writer, title string) {
	_, _ = fmt.Fprintln(out)
	_, _ = cli.Blue.Fprintln(out, title)
	_, _ = fmt.Fprintln(out, strings.Repeat("-", 50))
}

func stringDemo(out io.Writer) {
	heading(out, "String helpers")

	text := "hello world"
	_, _ = fmt.Fprintf(out, "Original:      %q\n", text)
	_, _ = fmt.Fprintf(out, "Capitalized:   %q\n", textutil.Capitalize(text))
	_, _ = fmt.Fprintf(out, "Reversed:      %q\n", textutil.Reverse(text))
	_, _ = fmt.Fprintf(out, "Truncated:     %q\n", textutil.Truncate(text, 8))
	_, _ = fmt.Fprintf(out, "Count of \"o\":  %d\n", textutil.CountOccurrences(text, "o"))
	_, _ = fmt.Fprintf(out, "Is Palindrome: %t\n", textutil.IsPalindrome("racecar"))
}

func arrayDemo(out io.Writer) {
	heading(out, "Slice helpers")

	numbers := []int{1, 2, 2, 3, 4, 4, 5}
	_, _ = fmt.Fprintf(out, "Original:         %v\n", numbers)
	_, _ = fmt.Fprintf(out, "Unique:           %v\n", sliceutil.Unique(numbers))
	_, _ = fmt.Fprintf(out, "Chunked (size 2): %v\n", sliceutil.Chunk(numbers, 2))

	nested := []any{1, []any{2, []any{3, []any{4}}}}
	_, _ = fmt.Fprintf(out, "Nested:           %v\n", nested)
	_, _ = fmt.Fprintf(out, "Flattened:        %v\n", sliceutil.Flatten(nested, -1))
}

func objectDemo(out io.Writer) error {
	heading(out, "Document helpers")

	doc := objutil.Document{
		"name": "John Doe",
		"address": objutil.Document{
			"city": "New York",
			"zip":  "10001",
		},
	}
	cloned := objutil.DeepClone(doc).(objutil.Document)
	objutil.Set(cloned, "address.city", "Boston")

	merged := objutil.DeepMerge(doc, objutil.Document{"address": objutil.Document{"country": "USA"}})
	pretty, err := json.MarshalIndent(objutil.Pick(merged, "address"), "", "  ")
	if err != nil {
		return fmt.Errorf("encode merged document: %w", err)
	}

	_, _ = fmt.Fprintf(out, "City:           %v\n", objutil.Get(doc, "address.city", nil))
	_, _ = fmt.Fprintf(out, "Clone city:     %v\n", objutil.Get(cloned, "address.city", nil))
	_, _ = fmt.Fprintf(out, "Non-existent:   %v\n", objutil.Get(doc, "address.country", "USA"))
	_, _ = fmt.Fprintf(out, "Merged address: %s\n", pretty)
	return nil
}

func validationDemo(out io.Writer) {
	heading(out, "Validation helpers")

	for _, email := range []string{"test@example.com", "invalid-email", "user@domain.co"} {
		_, _ = fmt.Fprintf(out, "%q: %s\n", email, mark(validate.Email(email)))
	}

	res := validate.Password("SecureP@ss123")
	_, _ = fmt.Fprintf(out, "\nPassword strength: %s\n", res.Strength)
	_, _ = fmt.Fprintf(out, "Valid: %t\n", res.Valid)
}

func pipelineDemo(out io.Writer) error {
	heading(out, "User pipeline")
	_, _ = fmt.Fprintf(out, "Raw data: %d records\n", len(rawUsers))

	res := processUsers(rawUsers)
	_, _ = fmt.Fprintf(out, "Total valid users: %d\n", len(res.Users))
	for _, role := range slices.Sorted(maps.Keys(res.ByRole)) {
		_, _ = fmt.Fprintf(out, "  %s: %d user(s)\n", role, len(res.ByRole[role]))
	}

	rows := make([][]string, 0, len(res.Users))
	for i, u := range res.Users {
		rows = append(rows, []string{strconv.Itoa(i + 1), u.Name, u.Email, u.Role})
	}
	return cli.Table(out, []string{"#", "Name", "Email", "Role"}, rows)
}

// processUsers capitalizes names, drops invalid emails, keeps the first
// user per email and groups the rest by role. The input is not modified.
func processUsers(in []user) processed {
	valid := make([]user, 0, len(in))
	for _, u := range in {
		u.Name = textutil.Capitalize(u.Name)
		if validate.Email(u.Email) {
			valid = append(valid, u)
		}
	}

	users := sliceutil.UniqueBy(valid, func(u user) string { return u.Email })
	return processed{
		Users:  users,
		ByRole: sliceutil.GroupBy(users, func(u user) string { return u.Role }),
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
