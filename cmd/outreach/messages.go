package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/slinkp/outreach/internal/filter"
	"github.com/slinkp/outreach/internal/observability"
	"github.com/slinkp/outreach/internal/task"
)

var (
	messagesFilterMode  string
	messagesOldestFirst bool
	replyText           string
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Manage recruiter messages",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recruiter messages",
	RunE:  runMessagesList,
}

var messagesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one message in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesShow,
}

var messagesReplyCmd = &cobra.Command{
	Use:   "reply <id>",
	Short: "Generate a reply, or save one given with --text",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesReply,
}

var messagesArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a message without replying",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesArchive,
}

var messagesSendCmd = &cobra.Command{
	Use:   "send <id>",
	Short: "Send the saved reply and archive the message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesSend,
}

func init() {
	messagesListCmd.Flags().StringVar(&messagesFilterMode, "filter", filter.ModeAll, "Filter: all, archived, replied, not-replied")
	messagesListCmd.Flags().BoolVar(&messagesOldestFirst, "oldest-first", false, "Sort oldest first instead of newest first")
	messagesReplyCmd.Flags().StringVar(&replyText, "text", "", "Save this reply text instead of generating one")

	messagesCmd.AddCommand(messagesListCmd)
	messagesCmd.AddCommand(messagesShowCmd)
	messagesCmd.AddCommand(messagesReplyCmd)
	messagesCmd.AddCommand(messagesArchiveCmd)
	messagesCmd.AddCommand(messagesSendCmd)
	rootCmd.AddCommand(messagesCmd)
}

func parseMessageID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid message id %q", raw)
	}
	return id, nil
}

func runMessagesList(_ *cobra.Command, _ []string) error {
	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	msgs, err := client.ListMessages(context.Background())
	if err != nil {
		return err
	}

	msgs = filter.SortMessages(filter.Messages(msgs, messagesFilterMode), !messagesOldestFirst)
	observability.NewPrinter(os.Stdout).PrintMessages(msgs)
	return nil
}

func runMessagesShow(_ *cobra.Command, args []string) error {
	id, err := parseMessageID(args[0])
	if err != nil {
		return err
	}

	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	msgs, err := client.ListMessages(context.Background())
	if err != nil {
		return err
	}
	for i := range msgs {
		if msgs[i].ID == id {
			observability.NewPrinter(os.Stdout).PrintMessage(&msgs[i], true)
			return nil
		}
	}
	return fmt.Errorf("message %d not found", id)
}

func runMessagesReply(_ *cobra.Command, args []string) error {
	id, err := parseMessageID(args[0])
	if err != nil {
		return err
	}

	client, poller, _, err := newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if replyText != "" {
		if _, err := client.SaveReply(ctx, id, replyText); err != nil {
			return err
		}
		fmt.Println("Reply saved")
		return nil
	}

	ref, err := client.GenerateReply(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Generating reply (task %s)...\n", ref.TaskID)

	key := task.Key{OwnerID: id, Kind: task.KindGenerateReply}
	t, err := waitForTask(ctx, poller, key, ref.TaskID)
	if err != nil {
		return err
	}
	if text, ok := t.Result["reply_message"].(string); ok {
		fmt.Println(text)
	} else {
		fmt.Println("Reply generated")
	}
	return nil
}

func runMessagesArchive(_ *cobra.Command, args []string) error {
	id, err := parseMessageID(args[0])
	if err != nil {
		return err
	}

	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	if err := client.ArchiveMessage(context.Background(), id); err != nil {
		return err
	}
	fmt.Println("Message archived")
	return nil
}

func runMessagesSend(_ *cobra.Command, args []string) error {
	id, err := parseMessageID(args[0])
	if err != nil {
		return err
	}

	client, poller, _, err := newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()

	ref, err := client.SendAndArchive(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Sending reply (task %s)...\n", ref.TaskID)

	key := task.Key{OwnerID: id, Kind: task.KindSendReply}
	if _, err := waitForTask(ctx, poller, key, ref.TaskID); err != nil {
		return err
	}
	fmt.Println("Reply sent and message archived")
	return nil
}
