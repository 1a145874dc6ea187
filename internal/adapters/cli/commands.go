package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kirillkom/ca-suite-backend/internal/bootstrap"
	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/usecase"
)

func newMigrateCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables in DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := bootstrap.OpenStore(cmd.Context(), env.Config())
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", store.Dialect())
			return nil
		},
	}
}

func newNoticeCmd(env Env) *cobra.Command {
	var attachments []string

	cmd := &cobra.Command{
		Use:   "notice <file>",
		Short: "Check a notice for missing documents and draft a reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notice, err := readDocument(env.FS, args[0])
			if err != nil {
				return err
			}
			docs := make([]domain.NoticeDocument, 0, len(attachments))
			for _, path := range attachments {
				doc, err := readDocument(env.FS, path)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
			}

			cfg := env.Config()
			analyzer := usecase.NewNoticeIntakeUseCase(
				bootstrap.NewExtractor(cfg),
				bootstrap.NewGenerator(cfg, nil),
				bootstrap.GenerationSettings(cfg),
			)
			analysis, err := analyzer.Analyze(cmd.Context(), notice, docs)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().StringArrayVarP(&attachments, "attachment", "a", nil, "Supporting document (repeatable)")
	return cmd
}

func newTallyCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "tally <file>",
		Short: "Sum numeric columns of a CSV, JSON or XLSX export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(env.FS, args[0])
			if err != nil {
				return err
			}
			summary, err := bootstrap.NewTallyImporter().Import(cmd.Context(), doc.Filename, doc.Content)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func newConfigCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(env.Config().Redacted()); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	})
	return cmd
}

func readDocument(fs afero.Fs, path string) (domain.NoticeDocument, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return domain.NoticeDocument{}, fmt.Errorf("read %s: %w", path, err)
	}
	return domain.NoticeDocument{Filename: filepath.Base(path), Content: content}, nil
}
