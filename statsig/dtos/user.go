package dtos

// User holds the identity attributes used for evaluation and logging.
// PrivateAttributes are sent on evaluation requests but are stripped from any
// logged payload.
type User struct {
	UserID             string                 `json:"userID,omitempty"`
	Email              string                 `json:"email,omitempty"`
	IPAddress          string                 `json:"ip,omitempty"`
	UserAgent          string                 `json:"userAgent,omitempty"`
	Country            string                 `json:"country,omitempty"`
	Locale             string                 `json:"locale,omitempty"`
	AppVersion         string                 `json:"appVersion,omitempty"`
	Custom             map[string]interface{} `json:"custom,omitempty"`
	PrivateAttributes  map[string]interface{} `json:"privateAttributes,omitempty"`
	StatsigEnvironment map[string]string      `json:"statsigEnvironment,omitempty"`
}

// Copy returns a shallow copy of the user with its own map instances, so that
// callers mutating the original after handing it to the SDK cannot race the
// stored snapshot.
func (u *User) Copy() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Custom != nil {
		c.Custom = make(map[string]interface{}, len(u.Custom))
		for k, v := range u.Custom {
			c.Custom[k] = v
		}
	}
	if u.PrivateAttributes != nil {
		c.PrivateAttributes = make(map[string]interface{}, len(u.PrivateAttributes))
		for k, v := range u.PrivateAttributes {
			c.PrivateAttributes[k] = v
		}
	}
	if u.StatsigEnvironment != nil {
		c.StatsigEnvironment = make(map[string]string, len(u.StatsigEnvironment))
		for k, v := range u.StatsigEnvironment {
			c.StatsigEnvironment[k] = v
		}
	}
	return &c
}
