package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/fc"
)

// CredentialsProvider supplies the credentials for an invocation whose
// request carried none.
type CredentialsProvider interface {
	Issue(r *http.Request) (fc.Credentials, error)
}

type NoCredentials struct{}

func (NoCredentials) Issue(*http.Request) (fc.Credentials, error) { return fc.Credentials{}, nil }

// SettingsCredentials reads the FC_ACCESS_KEY_* settings the platform
// exports into the function environment.
type SettingsCredentials struct {
	Settings config.Settings
}

func (p SettingsCredentials) Issue(*http.Request) (fc.Credentials, error) {
	if p.Settings == nil {
		return fc.Credentials{}, nil
	}
	get := func(k string) string {
		v, _ := p.Settings.Lookup(k)
		return v
	}
	return fc.Credentials{
		AccessKeyID:     get(config.KeyAccessKeyID),
		AccessKeySecret: get(config.KeyAccessKeySecret),
		SecurityToken:   get(config.KeySecurityToken),
	}, nil
}
