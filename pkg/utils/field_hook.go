package utils

import (
	"github.com/sirupsen/logrus"
)

// FieldHook adds a fixed set of fields to every entry that does not
// already carry them.
type FieldHook struct {
	fields logrus.Fields
	levels []logrus.Level
}

func (hook *FieldHook) Levels() []logrus.Level {
	return hook.levels
}

func (hook *FieldHook) Fire(entry *logrus.Entry) error {
	for k, v := range hook.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}

func NewFieldHook(fields logrus.Fields, levels ...logrus.Level) *FieldHook {
	hook := FieldHook{
		fields: CopyMap(fields),
		levels: levels,
	}
	if len(hook.levels) == 0 {
		hook.levels = logrus.AllLevels
	}

	return &hook
}
