package account

import "github.com/kailas-cloud/learnhub/internal/domain/auth"

// Provider is the identity provider the account service signs users in with.
// It may additionally implement auth.OAuthProvider.
type Provider = auth.Provider
