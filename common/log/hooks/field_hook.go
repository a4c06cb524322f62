package hooks

import (
	log "github.com/sirupsen/logrus"
)

type fieldHook struct {
	key   string
	value interface{}
}

// NewFieldHook returns a hook that stamps key=value on every entry that does
// not already carry key.
func NewFieldHook(key string, value interface{}) log.Hook {
	return fieldHook{key: key, value: value}
}

func (hook fieldHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook fieldHook) Fire(entry *log.Entry) error {
	if _, ok := entry.Data[hook.key]; !ok {
		entry.Data[hook.key] = hook.value
	}
	return nil
}
