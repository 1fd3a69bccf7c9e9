package cooperative

import (
	"github.com/smallbiznis/coopbilling/internal/config"
	"github.com/smallbiznis/coopbilling/internal/console"
	"github.com/smallbiznis/coopbilling/internal/forms"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("cooperative",
	fx.Provide(console.NewSite),
	fx.Provide(NewFormRegistry),
	fx.Provide(provideFormsConfig),
	fx.Provide(provideLookup),
	fx.Invoke(RegisterModels),
)

func provideFormsConfig(log *zap.Logger) (*config.FormsConfigHolder, error) {
	return config.NewFormsConfigHolder(log, DefaultFormsConfig())
}

func provideLookup(db *gorm.DB) forms.RecordLookup {
	return forms.NewGormLookup(db)
}
