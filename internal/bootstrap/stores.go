package bootstrap

import (
	"github.com/checkmate-app/checkmate/internal/note"
	"github.com/checkmate-app/checkmate/internal/settings"
	"github.com/checkmate-app/checkmate/internal/task"
	"github.com/checkmate-app/checkmate/internal/user"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideUserStore(db *gorm.DB) *user.Store {
	return user.NewStore(db)
}

func ProvideTaskStore(db *gorm.DB) *task.Store {
	return task.NewStore(db)
}

func ProvideNoteStore(db *gorm.DB, qdrantClient *qdrant.Client) *note.Store {
	return note.NewStore(db, qdrantClient)
}

func ProvideSettingsStore(db *gorm.DB) *settings.Store {
	return settings.NewStore(db)
}

func RunMigrations(userStore *user.Store, taskStore *task.Store, noteStore *note.Store, settingsStore *settings.Store) error {
	if err := userStore.Migrate(); err != nil {
		return err
	}
	if err := taskStore.Migrate(); err != nil {
		return err
	}
	if err := noteStore.Migrate(); err != nil {
		return err
	}
	return settingsStore.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideUserStore,
		ProvideTaskStore,
		ProvideNoteStore,
		ProvideSettingsStore,
	),
	fx.Invoke(RunMigrations),
)
