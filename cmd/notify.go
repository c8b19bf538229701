package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// notifyCmd represents the notify command
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Collaboration notification tools",
}

// notifyPreviewCmd shows the notification for a stored video without posting it
var notifyPreviewCmd = &cobra.Command{
	Use:   "preview [VIDEO_URL]",
	Short: "Preview the notification for a stored video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.notifierUsecase.Preview(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to preview notification: %w", err)
		}

		send, _ := cmd.Flags().GetBool("send")
		if send {
			if err := a.notifierUsecase.HandleVideoChanged(ctx, &res.Video); err != nil {
				return fmt.Errorf("failed to send notification: %w", err)
			}
		}

		result, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		fmt.Println(string(result))
		return nil
	},
}

func init() {
	notifyPreviewCmd.Flags().Bool("send", false, "Publish the notification after previewing it")

	notifyCmd.AddCommand(notifyPreviewCmd)
	rootCmd.AddCommand(notifyCmd)
}
