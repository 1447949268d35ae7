package pandasai

import "context"

// Chat answers a natural-language query about the frame. The first call
// builds the frame's agent; later calls reuse it. An optional config override
// applies only when the agent does not exist yet, and in that case it also
// persists as the frame's config.
func (d *DataFrame) Chat(ctx context.Context, query string, cfg ...*Config) (string, error) {
	var override *Config
	if len(cfg) > 0 {
		override = cfg[0]
	}

	agent, err := d.ensureAgent(override)
	if err != nil {
		return "", err
	}
	return agent.Chat(ctx, query)
}

// FollowUp continues the frame's existing conversation. It fails with a
// StateError when no chat has happened yet.
func (d *DataFrame) FollowUp(ctx context.Context, query string) (string, error) {
	d.mu.Lock()
	agent := d.agent
	d.mu.Unlock()

	if agent == nil {
		return "", &StateError{Msg: "No existing conversation. Please use chat() first."}
	}
	return agent.FollowUp(ctx, query)
}

// ensureAgent returns the frame's agent, constructing it on first use. The
// frame owns exactly one agent for its whole lifetime.
func (d *DataFrame) ensureAgent(override *Config) (*Agent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.agent != nil {
		return d.agent, nil
	}

	cfg := d.Config
	if override != nil {
		cfg = override
		// A config supplied on first chat sticks to the frame.
		d.Config = override
	}

	agent, err := NewAgent([]*DataFrame{d}, cfg)
	if err != nil {
		return nil, err
	}
	d.agent = agent
	return agent, nil
}
