package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var voterHeaders = []string{"ID", "FIRST NAME", "LAST NAME", "EMAIL", "CREATED"}

func voterRow(v VoterResponse) []string {
	return []string{formatID(v.ID), v.FirstName, v.LastName, v.Email, v.CreatedAt}
}

// NewVoterCmd создаёт группу команд для управления избирателями.
func NewVoterCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voter",
		Short: "Manage voters",
	}

	cmd.AddCommand(
		newVoterListCmd(clientFn, outputFn),
		newVoterShowCmd(clientFn, outputFn),
		newVoterRegisterCmd(clientFn, outputFn),
		newVoterSetEmailCmd(clientFn, outputFn),
		newVoterDeleteCmd(clientFn, outputFn),
		newVoterImportCmd(clientFn, outputFn),
	)

	return cmd
}

func newVoterListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all voters",
		RunE: func(cmd *cobra.Command, args []string) error {
			voters, err := clientFn().ListVoters()
			if err != nil {
				return err
			}

			rows := make([][]string, len(voters))
			for i, v := range voters {
				rows[i] = voterRow(v)
			}
			outputFn().Print(voterHeaders, rows, voters)
			return nil
		},
	}
}

func newVoterShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show voter details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			voter, err := clientFn().GetVoter(id)
			if err != nil {
				return err
			}

			outputFn().Print(voterHeaders, [][]string{voterRow(*voter)}, voter)
			return nil
		},
	}
}

func newVoterRegisterCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var row VoterRow

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new voter",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			voter, err := clientFn().CreateVoter(row)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Voter registered: %d", voter.ID))
			out.Print(voterHeaders, [][]string{voterRow(*voter)}, voter)
			return nil
		},
	}

	cmd.Flags().StringVar(&row.FirstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&row.LastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&row.Email, "email", "", "Email, unique per voter (required)")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newVoterSetEmailCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "set-email ID",
		Short: "Change a voter's email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			changes, err := clientFn().UpdateVoterEmail(id, email)
			if err != nil {
				return err
			}

			outputFn().Changes("Voter updated:", id, changes)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New email (required)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newVoterDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a voter and their vote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			changes, err := clientFn().DeleteVoter(id)
			if err != nil {
				return err
			}

			outputFn().Changes("Voter deleted:", id, changes)
			return nil
		},
	}
}

func newVoterImportCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Register voters from a CSV file (first_name,last_name,email)",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			rows, err := ReadVoterRows(f)
			if err != nil {
				return err
			}

			out := outputFn()
			result := ImportVoters(clientFn(), rows)
			for _, failure := range result.Failures {
				out.Error(fmt.Sprintf("line %d (%s): %v", failure.Line, failure.Email, failure.Err))
			}

			rowsOut := make([][]string, len(result.Created))
			for i, v := range result.Created {
				rowsOut[i] = voterRow(v)
			}
			out.Print(voterHeaders, rowsOut, result.Created)
			out.Success(fmt.Sprintf("Imported %d of %d voters", len(result.Created), len(rows)))

			if len(result.Failures) > 0 {
				return fmt.Errorf("%d voters were not imported", len(result.Failures))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "CSV file with a header row (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

// ReadVoterRows читает CSV с заголовком first_name,last_name,email.
func ReadVoterRows(r io.Reader) ([]VoterRow, error) {
	var rows []VoterRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse voters csv: %w", err)
	}
	return rows, nil
}

// ImportFailure — строка CSV, которую API не принял.
type ImportFailure struct {
	// Line — номер строки в файле (заголовок — строка 1).
	Line  int
	Email string
	Err   error
}

// ImportResult — итог импорта избирателей.
type ImportResult struct {
	Created  []VoterResponse
	Failures []ImportFailure
}

// ImportVoters регистрирует избирателей по одному; ошибка строки не прерывает импорт.
func ImportVoters(client *Client, rows []VoterRow) ImportResult {
	result := ImportResult{Created: []VoterResponse{}}
	for i, row := range rows {
		voter, err := client.CreateVoter(row)
		if err != nil {
			result.Failures = append(result.Failures, ImportFailure{Line: i + 2, Email: row.Email, Err: err})
			continue
		}
		result.Created = append(result.Created, *voter)
	}
	return result
}
