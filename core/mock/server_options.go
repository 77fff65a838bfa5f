package mock

type serverConfig struct {
	status    int
	token     string
	onRequest func(*Request)
}

type ServerOption func(*serverConfig)

func ServerWithStatus(status int) ServerOption {
	return func(c *serverConfig) {
		c.status = status
	}
}

// ServerWithToken makes the server reject requests without the bearer token
func ServerWithToken(token string) ServerOption {
	return func(c *serverConfig) {
		c.token = token
	}
}

func ServerWithRequestHook(hook func(*Request)) ServerOption {
	return func(c *serverConfig) {
		c.onRequest = hook
	}
}
