package shopsync

import (
	supabase "github.com/supabase-community/supabase-go"
)

// Login exchanges user credentials for a bearer token at the identity
// provider. The provider is an external collaborator; everything beyond
// "token or failure" is opaque to the pipeline.
func (p *Pipeline) Login(email, password string) (string, error) {
	client, err := supabase.NewClient(p.Config.AuthURL, p.Config.AuthAnonKey, &supabase.ClientOptions{})
	if err != nil {
		return "", &ErrAuthentication{Message: err.Error()}
	}

	session, err := client.SignInWithEmailPassword(email, password)
	if err != nil {
		return "", &ErrAuthentication{Message: err.Error()}
	}
	if session.AccessToken == "" {
		return "", &ErrAuthentication{Message: "identity provider returned an empty token"}
	}
	return session.AccessToken, nil
}
