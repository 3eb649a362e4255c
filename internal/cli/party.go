package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var partyHeaders = []string{"ID", "NAME", "DESCRIPTION"}

func partyRow(p PartyResponse) []string {
	return []string{formatID(p.ID), p.Name, orDash(p.Description)}
}

// NewPartyCmd создаёт группу команд для управления партиями.
func NewPartyCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "party",
		Short: "Manage parties",
	}

	cmd.AddCommand(
		newPartyListCmd(clientFn, outputFn),
		newPartyShowCmd(clientFn, outputFn),
		newPartyCreateCmd(clientFn, outputFn),
		newPartyUpdateCmd(clientFn, outputFn),
		newPartyDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newPartyListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all parties",
		RunE: func(cmd *cobra.Command, args []string) error {
			parties, err := clientFn().ListParties()
			if err != nil {
				return err
			}

			rows := make([][]string, len(parties))
			for i, p := range parties {
				rows[i] = partyRow(p)
			}
			outputFn().Print(partyHeaders, rows, parties)
			return nil
		},
	}
}

func newPartyShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show party details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			party, err := clientFn().GetParty(id)
			if err != nil {
				return err
			}

			outputFn().Print(partyHeaders, [][]string{partyRow(*party)}, party)
			return nil
		},
	}
}

func newPartyCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new party",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			party, err := clientFn().CreateParty(name, description)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Party created: %d", party.ID))
			out.Print(partyHeaders, [][]string{partyRow(*party)}, party)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Party name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Party description")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newPartyUpdateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}

			changes, err := clientFn().UpdateParty(id, name, desc)
			if err != nil {
				return err
			}

			outputFn().Changes("Party updated:", id, changes)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New party name (required)")
	cmd.Flags().StringVar(&description, "description", "", "New description (kept if omitted)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newPartyDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a party (its candidates become independent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			changes, err := clientFn().DeleteParty(id)
			if err != nil {
				return err
			}

			outputFn().Changes("Party deleted:", id, changes)
			return nil
		},
	}
}
