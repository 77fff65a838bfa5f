package mock

type responseConfig struct {
	connection bool
	errors     []string
}

type ResponseOption func(*responseConfig)

// ResponseWithoutConnection places the rows directly under the field as a bare array
func ResponseWithoutConnection() ResponseOption {
	return func(c *responseConfig) {
		c.connection = false
	}
}

func ResponseWithErrors(messages ...string) ResponseOption {
	return func(c *responseConfig) {
		c.errors = append(c.errors, messages...)
	}
}
