package cmd

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"patron-manager/core/config"
	"patron-manager/feature/patreon"
	"patron-manager/feature/patreon/webhook"

	"github.com/spf13/cobra"
)

const sampleWebhookBody = `{"data":{"id":"12345","type":"member","attributes":{"email":"test@example.com","full_name":"Test User","patron_status":"active_patron"}}}`

var (
	webhookURL   string
	webhookEvent string
	webhookFile  string
)

// sendWebhookCmd posts a signed webhook delivery to a running server.
var sendWebhookCmd = &cobra.Command{
	Use:   "send-webhook",
	Short: "Send a signed test webhook to a running server",
	Long: `Signs a payload with the configured webhook secret and posts it to the
webhook endpoint. Without --file a sample members:create body is sent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}
		if !cfg.Server.WebhookEnabled() {
			return fmt.Errorf("server.webhook_secret is not set")
		}

		body := []byte(sampleWebhookBody)
		if webhookFile != "" {
			if body, err = os.ReadFile(webhookFile); err != nil {
				return err
			}
		}

		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, webhookURL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(patreon.HeaderEvent, webhookEvent)
		req.Header.Set(patreon.HeaderSignature, webhook.Sign(body, cfg.Server.WebhookSecret))

		resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
		if err != nil {
			return fmt.Errorf("failed to send webhook: %w", err)
		}
		defer resp.Body.Close()

		text, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(cmd.OutOrStdout(), "Response Status: %d\nResponse Body: %s\n", resp.StatusCode, text)
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("webhook rejected with status %d", resp.StatusCode)
		}
		return nil
	},
}

func init() {
	sendWebhookCmd.Flags().StringVar(&webhookURL, "url", "http://localhost:3000/webhook", "Webhook endpoint")
	sendWebhookCmd.Flags().StringVar(&webhookEvent, "event", webhook.EventMemberCreate, "Value of the event header")
	sendWebhookCmd.Flags().StringVar(&webhookFile, "file", "", "JSON body to send instead of the sample")
	RootCmd.AddCommand(sendWebhookCmd)
}
