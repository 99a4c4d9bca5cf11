package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"csv2project/models"
	"csv2project/services"
)

func newFieldsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Projectのフィールド一覧を表示する (CSVの列名に使う)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if err := a.cfg.ValidateProject(); err != nil {
				return err
			}

			resolver := services.NewProjectResolver(client, a.logger)
			project, err := resolver.Resolve(cmd.Context(), a.cfg.ProjectOwner, a.cfg.ProjectNumber)
			if err != nil {
				return err
			}

			return printFields(cmd, project)
		},
	}

	addProjectFlags(cmd, a.cfg)
	return cmd
}

func printFields(cmd *cobra.Command, project *models.Project) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s #%d, %s)\n\n", project.Title, project.Owner, project.Number, project.OwnerType)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tOPTIONS\tNOTE")
	for _, field := range services.SortedFields(project) {
		options := make([]string, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, opt.Name)
		}

		note := ""
		switch {
		case services.IsReservedColumn(field.Name):
			note = "予約列のためCSVからは設定されません"
		case !settableType(field.DataType):
			note = "未対応の種別"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", field.Name, field.DataType, strings.Join(options, ", "), note)
	}
	return w.Flush()
}

func settableType(t models.FieldDataType) bool {
	switch t {
	case models.FieldTypeText, models.FieldTypeNumber, models.FieldTypeDate, models.FieldTypeSingleSelect:
		return true
	}
	return false
}
