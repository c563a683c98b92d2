package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urmzd/plasma-remote/pkg/api/types"
)

var (
	pressProtocol string
	zapName       string
	shortcutName  string
	jsonOutput    bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON responses")

	pressCmd.Flags().StringVar(&pressProtocol, "protocol", "", "IR protocol override for these presses")
	zapCmd.Flags().StringVar(&zapName, "name", "", "Channel name shown in the notification")
	shortcutsSetCmd.Flags().StringVar(&shortcutName, "name", "", "Channel name (default: from the lineup)")

	shortcutsCmd.AddCommand(shortcutsSetCmd)
	shortcutsCmd.AddCommand(shortcutsClearCmd)
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the TV state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newClient(serverURL).State(cmd.Context())
		if err != nil {
			return err
		}
		return printState(cmd.OutOrStdout(), out)
	},
}

var pressCmd = &cobra.Command{
	Use:   "press KEY...",
	Short: "Press one or more remote keys in order",
	Example: `  remotectl press POWER
  remotectl press 1 2 ENTER
  remotectl press VOL_UP --protocol sam_plasma_b`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient(serverURL)
		var last *types.StateResponse
		for _, key := range args {
			out, err := c.Press(cmd.Context(), strings.ToUpper(key), pressProtocol)
			if err != nil {
				return fmt.Errorf("press %s: %w", key, err)
			}
			last = out
		}
		return printState(cmd.OutOrStdout(), last)
	},
}

var zapCmd = &cobra.Command{
	Use:   "zap NUMBER",
	Short: "Type a channel number digit by digit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseChannel(args[0])
		if err != nil {
			return err
		}
		out, err := newClient(serverURL).Zap(cmd.Context(), n, zapName)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Zapping to channel %d (%d keys)\n", out.Zap.Number, out.Zap.Total)
		return nil
	},
}

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "List digit shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newClient(serverURL).Shortcuts(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		if out.Count == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No shortcuts assigned.")
			return nil
		}
		for _, sc := range out.Shortcuts {
			fmt.Fprintf(cmd.OutOrStdout(), "%-3s -> %3d  %s\n", sc.Key, sc.Number, sc.Name)
		}
		return nil
	},
}

var shortcutsSetCmd = &cobra.Command{
	Use:   "set KEY NUMBER",
	Short: "Assign a channel to a digit key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseChannel(args[1])
		if err != nil {
			return err
		}
		out, err := newClient(serverURL).AssignShortcut(cmd.Context(), args[0], n, shortcutName)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Key %s now zaps to %d %s\n", out.Shortcut.Key, out.Shortcut.Number, out.Shortcut.Name)
		return nil
	},
}

var shortcutsClearCmd = &cobra.Command{
	Use:   "clear KEY",
	Short: "Remove the shortcut on a digit key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient(serverURL).ClearShortcut(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Shortcut on key %s cleared\n", args[0])
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:     "ask TEXT...",
	Short:   "Send a free-text command to the assistant",
	Example: `  remotectl ask put on arte`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newClient(serverURL).Ask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", out.Outcome.Action, out.Outcome.Reply)
		return nil
	},
}

func parseChannel(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid channel %q: must be a positive integer", s)
	}
	return n, nil
}

func printState(w io.Writer, out *types.StateResponse) error {
	if jsonOutput {
		return writeJSON(w, out)
	}
	st := out.State
	power := "OFF"
	if st.IsOn {
		power = "ON"
	}
	fmt.Fprintf(w, "Power:    %s\n", power)
	fmt.Fprintf(w, "Channel:  %d\n", st.Channel)
	fmt.Fprintf(w, "Volume:   %d", st.Volume)
	if st.IsMuted {
		fmt.Fprint(w, " (muted)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source:   %s\n", st.Source)
	fmt.Fprintf(w, "Protocol: %s\n", out.Protocol)
	if out.Notification != nil {
		fmt.Fprintf(w, "Message:  %s\n", out.Notification.Message)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
