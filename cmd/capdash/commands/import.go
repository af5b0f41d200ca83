package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kumul-digital/capdash/backend/internal/ingest"
	"github.com/kumul-digital/capdash/backend/internal/store"
	"github.com/kumul-digital/capdash/backend/pkg/config"
	"github.com/kumul-digital/capdash/backend/pkg/database"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <dataset> <file>",
	Short: "Import a questionnaire or establishment file",
	Long: `Imports a spreadsheet (.xlsx, .xls, .csv) into one of the registers.

Dataset is "officers" or "establishment". Without --commit the file is
parsed and validated but nothing is stored.

Example:
  go run ./cmd/capdash import officers staff.xlsx
  go run ./cmd/capdash import establishment register.csv --commit`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

var importCommit bool

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importCommit, "commit", false, "persist the import (default is dry run)")
}

func runImport(cmd *cobra.Command, args []string) error {
	dataset := ingest.Dataset(args[0])
	path := args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(cmd.Context(), db.Pool); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	normalizer := ingest.NewNormalizer(ingest.NormalizerConfig{
		AgencyType:  cfg.Import.AgencyType,
		PreviewRows: cfg.Import.PreviewRows,
	}, log)
	service := ingest.NewService(
		normalizer,
		nil, // document extraction is API-only
		store.NewOfficerRepository(db.Pool),
		store.NewEstablishmentRepository(db.Pool),
		log,
	)

	result, err := service.ImportSpreadsheet(cmd.Context(), dataset, data, filepath.Base(path), importCommit)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("File:          %s\n", path)
	fmt.Printf("Dataset:       %s\n", result.Dataset)
	fmt.Printf("Rows read:     %d\n", result.RowsRead)
	fmt.Printf("Valid records: %d\n", result.RecordsValid)
	if result.Committed {
		fmt.Printf("Stored:        %d\n", result.RecordsStored)
	} else {
		fmt.Println("Dry run only - pass --commit to store")
	}

	return nil
}
