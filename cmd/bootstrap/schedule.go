package bootstrap

import (
	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var ScheduleModule = fx.Module("schedule",
	fx.Provide(
		NewScheduleSettings,
	),
)

func NewScheduleSettings(cfg config.Config) (slot.Settings, error) {
	s := cfg.Schedule
	return slot.NewSettings(s.TimeZone, s.DefaultOpen, s.DefaultClose, s.SlotStep)
}
