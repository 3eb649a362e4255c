package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var voteHeaders = []string{"ID", "VOTER", "CANDIDATE", "CREATED"}

func voteRow(v VoteResponse) []string {
	voter := formatID(v.VoterID)
	if v.VoterName != "" {
		voter += " (" + v.VoterName + ")"
	}
	candidate := formatID(v.CandidateID)
	if v.CandidateName != "" {
		candidate += " (" + v.CandidateName + ")"
	}
	return []string{formatID(v.ID), voter, candidate, v.CreatedAt}
}

// NewVoteCmd создаёт группу команд для работы с голосами.
func NewVoteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Cast and manage votes",
	}

	cmd.AddCommand(
		newVoteListCmd(clientFn, outputFn),
		newVoteShowCmd(clientFn, outputFn),
		newVoteCastCmd(clientFn, outputFn),
		newVoteMoveCmd(clientFn, outputFn),
		newVoteDeleteCmd(clientFn, outputFn),
		newVoteTallyCmd(clientFn, outputFn),
	)

	return cmd
}

func newVoteListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all votes",
		RunE: func(cmd *cobra.Command, args []string) error {
			votes, err := clientFn().ListVotes()
			if err != nil {
				return err
			}

			rows := make([][]string, len(votes))
			for i, v := range votes {
				rows[i] = voteRow(v)
			}
			outputFn().Print(voteHeaders, rows, votes)
			return nil
		},
	}
}

func newVoteShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show vote details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			vote, err := clientFn().GetVote(id)
			if err != nil {
				return err
			}

			outputFn().Print(voteHeaders, [][]string{voteRow(*vote)}, vote)
			return nil
		},
	}
}

func newVoteCastCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var voterID, candidateID int64

	cmd := &cobra.Command{
		Use:   "cast",
		Short: "Cast a vote (one per voter)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			vote, err := clientFn().CastVote(voterID, candidateID)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Vote cast: %d", vote.ID))
			out.Print(voteHeaders, [][]string{voteRow(*vote)}, vote)
			return nil
		},
	}

	cmd.Flags().Int64Var(&voterID, "voter", 0, "Voter ID (required)")
	cmd.Flags().Int64Var(&candidateID, "candidate", 0, "Candidate ID (required)")
	cmd.MarkFlagRequired("voter")
	cmd.MarkFlagRequired("candidate")

	return cmd
}

func newVoteMoveCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var candidateID int64

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a vote to another candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			changes, err := clientFn().MoveVote(id, candidateID)
			if err != nil {
				return err
			}

			outputFn().Changes("Vote updated:", id, changes)
			return nil
		},
	}

	cmd.Flags().Int64Var(&candidateID, "candidate", 0, "Candidate ID (required)")
	cmd.MarkFlagRequired("candidate")

	return cmd
}

func newVoteDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a vote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			changes, err := clientFn().DeleteVote(id)
			if err != nil {
				return err
			}

			outputFn().Changes("Vote deleted:", id, changes)
			return nil
		},
	}
}

func newVoteTallyCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var csvOutput bool

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Show votes per candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			tally, err := clientFn().Tally()
			if err != nil {
				return err
			}

			out := outputFn()
			if csvOutput {
				return out.CSV(tally)
			}

			rows := make([][]string, len(tally))
			for i, t := range tally {
				rows[i] = []string{formatID(t.CandidateID), t.FirstName + " " + t.LastName, orDash(t.PartyName), fmt.Sprint(t.Count)}
			}
			out.Print([]string{"CANDIDATE ID", "NAME", "PARTY", "VOTES"}, rows, tally)
			return nil
		},
	}

	cmd.Flags().BoolVar(&csvOutput, "csv", false, "Write the tally as CSV")

	return cmd
}
