package main

import (
	"github.com/spf13/cobra"

	"github.com/grupo-nexus/planner/internal/model"
)

// draftFlags collects the editable fields shared by create and update.
type draftFlags struct {
	theme        string
	date         string
	contentType  string
	channel      string
	status       string
	description  string
	account      string
	responsibles []string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.theme, "theme", "", "Post theme (required)")
	cmd.Flags().StringVar(&f.date, "date", "", "Publication date as dd/mm/yyyy")
	cmd.Flags().StringVar(&f.contentType, "type", "", "Content type: image, reel, story, carousel")
	cmd.Flags().StringVar(&f.channel, "channel", "", "Channel: instagram, linkedin, youtube, tiktok")
	cmd.Flags().StringVar(&f.status, "status", "", "Status: planned, in-production, in-review, approved, posted")
	cmd.Flags().StringVar(&f.description, "description", "", "Free-form description")
	cmd.Flags().StringVar(&f.account, "account", "", "Publishing account id")
	cmd.Flags().StringSliceVar(&f.responsibles, "responsible", nil, "Responsible id (repeatable)")
}

func (f *draftFlags) draft() model.PostDraft {
	return model.PostDraft{
		Theme:        f.theme,
		Date:         f.date,
		ContentType:  model.ContentType(f.contentType),
		Channel:      model.Channel(f.channel),
		Status:       model.Status(f.status),
		Description:  f.description,
		Account:      f.account,
		Responsibles: f.responsibles,
	}
}

func init() {
	postsCmd := &cobra.Command{Use: "posts", Short: "Post operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := newGateway().FetchPosts(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(posts)
		},
	}
	postsCmd.AddCommand(listCmd)

	var createFlags draftFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := newGateway().CreatePost(cmd.Context(), createFlags.draft())
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}
	createFlags.register(createCmd)
	_ = createCmd.MarkFlagRequired("theme")
	postsCmd.AddCommand(createCmd)

	var updateFlags draftFlags
	updateCmd := &cobra.Command{
		Use:   "update POST_ID",
		Short: "Replace every field of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := newGateway().UpdatePost(cmd.Context(), args[0], updateFlags.draft())
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}
	updateFlags.register(updateCmd)
	_ = updateCmd.MarkFlagRequired("theme")
	postsCmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete POST_ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newGateway().DeletePost(cmd.Context(), args[0])
		},
	}
	postsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(postsCmd)
}
