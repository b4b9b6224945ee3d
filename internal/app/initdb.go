package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/store"
	"github.com/vitalhub/storefront/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// checkSuper bootstraps the default super operator account and repairs it if
// the password was blanked or the level downgraded.
func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "storefront"

	ctx := context.Background()
	operator, err := a.store.GetOperator(ctx, superUsername)
	switch {
	case store.IsNotFound(err):
		hashed, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash default super password", zap.Error(herr))
			return
		}
		if err := a.store.SaveOperator(ctx, &domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  string(hashed),
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}); err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	if resetPassword {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			zap.L().Error("failed to hash default super password", zap.Error(herr))
			return
		}
		operator.Password = string(hashed)
	}
	if resetLevel {
		operator.Level = "super"
	}
	if resetStatus {
		operator.Status = common.ENABLED
	}

	if err := a.store.SaveOperator(ctx, operator); err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

// checkSettings seeds default runtime settings that are missing.
func (a *Application) checkSettings() {
	ctx := context.Background()
	defaults := []struct {
		stype, name, value string
	}{
		{SettingsTypeCheckout, KeyBusinessPhone, a.appConfig.Checkout.BusinessPhone},
		{SettingsTypeCheckout, KeyStoreName, a.appConfig.Checkout.StoreName},
		{SettingsTypeCart, KeyCartPurgeDays, strconv.Itoa(90)},
	}
	for _, d := range defaults {
		_, err := a.store.GetSetting(ctx, d.stype, d.name)
		if err == nil {
			continue
		}
		if !store.IsNotFound(err) {
			zap.S().Warnf("settings probe failed for %s/%s: %v", d.stype, d.name, err)
			continue
		}
		if err := a.store.SaveSetting(ctx, d.stype, d.name, d.value); err != nil {
			zap.S().Warnf("failed to seed setting %s/%s: %v", d.stype, d.name, err)
		}
	}
}
