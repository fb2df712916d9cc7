// sitectl 是站点的运维命令行：迁移数据库、创建管理员、导入初始内容。
package main

import (
	"fmt"
	"os"

	"github.com/agencysite/internal/config"
	"github.com/agencysite/internal/db"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(openFromConfig).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// opener 打开并迁移数据库，测试中替换为内存库
type opener func() (*gorm.DB, error)

func openFromConfig() (*gorm.DB, error) {
	cfg := config.Load()
	if err := db.Init(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return db.DB, nil
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Maintenance commands for the agency site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(open), newCreateAdminCmd(open), newSeedCmd(open))
	return root
}

func newMigrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := open(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database migrated")
			return nil
		},
	}
}
