package migrations

import (
	"github.com/anandaputra/layanan-tracker/internal/repository"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "000001_create_admins",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.AdminModel{}); err != nil {
					return err
				}
				return tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_email ON admins (email)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.AdminModel{})
			},
		},
		{
			ID: "000002_create_submissions",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.SubmissionModel{}); err != nil {
					return err
				}
				indexes := []string{
					`CREATE UNIQUE INDEX IF NOT EXISTS idx_submissions_tracking_code ON submissions (tracking_code)`,
					`CREATE INDEX IF NOT EXISTS idx_submissions_status_created ON submissions (status, created_at)`,
					`CREATE INDEX IF NOT EXISTS idx_submissions_nama ON submissions (lower(nama))`,
					`CREATE INDEX IF NOT EXISTS idx_submissions_email ON submissions (lower(email))`,
				}
				for _, sql := range indexes {
					if err := tx.Exec(sql).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.SubmissionModel{})
			},
		},
		{
			ID: "000003_create_notification_logs",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.NotificationLogModel{}); err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_notification_logs_submission_id ON notification_logs (submission_id)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.NotificationLogModel{})
			},
		},
	})

	return m.Migrate()
}
