package logging

import "go.uber.org/zap"

// New returns the global sugared logger named after the component using it
func New(component string) *zap.SugaredLogger {
	return zap.S().Named(component)
}
