package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var candidateHeaders = []string{"ID", "FIRST NAME", "LAST NAME", "INDUSTRY", "PARTY ID", "PARTY"}

func candidateRow(c CandidateResponse) []string {
	return []string{
		formatID(c.ID),
		c.FirstName,
		c.LastName,
		strconv.FormatBool(c.IndustryConnected),
		optionalID(c.PartyID),
		orDash(c.PartyName),
	}
}

// NewCandidateCmd создаёт группу команд для управления кандидатами.
func NewCandidateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidate",
		Short: "Manage candidates",
	}

	cmd.AddCommand(
		newCandidateListCmd(clientFn, outputFn),
		newCandidateShowCmd(clientFn, outputFn),
		newCandidateCreateCmd(clientFn, outputFn),
		newCandidateSetPartyCmd(clientFn, outputFn),
		newCandidateDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newCandidateListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := clientFn().ListCandidates()
			if err != nil {
				return err
			}

			rows := make([][]string, len(candidates))
			for i, c := range candidates {
				rows[i] = candidateRow(c)
			}
			outputFn().Print(candidateHeaders, rows, candidates)
			return nil
		},
	}
}

func newCandidateShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show candidate details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			candidate, err := clientFn().GetCandidate(id)
			if err != nil {
				return err
			}

			outputFn().Print(candidateHeaders, [][]string{candidateRow(*candidate)}, candidate)
			return nil
		},
	}
}

func newCandidateCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var req CreateCandidateRequest
	var partyID int64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			if cmd.Flags().Changed("party") {
				req.PartyID = &partyID
			}

			candidate, err := clientFn().CreateCandidate(req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Candidate created: %d", candidate.ID))
			out.Print(candidateHeaders, [][]string{candidateRow(*candidate)}, candidate)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name (required)")
	cmd.Flags().BoolVar(&req.IndustryConnected, "industry", false, "Candidate is connected to the industry")
	cmd.Flags().Int64Var(&partyID, "party", 0, "Party ID")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")

	return cmd
}

func newCandidateSetPartyCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var partyID int64

	cmd := &cobra.Command{
		Use:   "set-party ID",
		Short: "Move a candidate to another party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			changes, err := clientFn().SetCandidateParty(id, partyID)
			if err != nil {
				return err
			}

			outputFn().Changes("Candidate updated:", id, changes)
			return nil
		},
	}

	cmd.Flags().Int64Var(&partyID, "party", 0, "Party ID (required)")
	cmd.MarkFlagRequired("party")

	return cmd
}

func newCandidateDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			changes, err := clientFn().DeleteCandidate(id)
			if err != nil {
				return err
			}

			outputFn().Changes("Candidate deleted:", id, changes)
			return nil
		},
	}
}
