package multisend

import "github.com/alphabill-org/alphabill-multisend/logger"

type Option func(c *Calculator)

func WithLogger(l logger.Logger) Option {
	return func(c *Calculator) {
		c.log = l
	}
}
