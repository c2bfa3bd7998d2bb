package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/incomeclarity/clientstate/pkg/kvstore"
	"github.com/incomeclarity/clientstate/pkg/safeparse"
	"github.com/incomeclarity/clientstate/pkg/sanitizer"
	"github.com/incomeclarity/clientstate/pkg/session"
	"github.com/incomeclarity/clientstate/pkg/validator"
)

// Key statuses.
const (
	keyMissing   = "missing"
	keyOK        = "ok"
	keyCorrupted = "corrupted"
	keyError     = "error"
)

type storageReport struct {
	Backend string          `json:"backend" yaml:"backend"`
	Target  string          `json:"target" yaml:"target"`
	State   string          `json:"state" yaml:"state"`
	Session *sessionSummary `json:"session,omitempty" yaml:"session,omitempty"`
	Keys    []keyReport     `json:"keys" yaml:"keys"`
}

// sessionSummary never carries the token or the full email.
type sessionSummary struct {
	UserID    string `json:"user_id" yaml:"user_id"`
	Email     string `json:"email" yaml:"email"`
	Token     string `json:"token" yaml:"token"`
	ExpiresAt string `json:"expires_at" yaml:"expires_at"`
}

type keyReport struct {
	Key    string `json:"key" yaml:"key"`
	Kind   string `json:"kind" yaml:"kind"`
	Status string `json:"status" yaml:"status"`
	Size   int    `json:"size,omitempty" yaml:"size,omitempty"`
	Stage  string `json:"stage,omitempty" yaml:"stage,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// buildReport reads every managed key without modifying storage.
func buildReport(a *app) storageReport {
	rep := storageReport{
		Backend: a.backend,
		Target:  a.target,
		State:   a.gateway.State().String(),
	}

	if rec := a.gateway.GetSession(); rec != nil {
		rep.Session = &sessionSummary{
			UserID:    rec.User.ID,
			Email:     sanitizer.MaskEmail(rec.User.Email),
			Token:     sanitizer.MaskString(rec.SessionToken, 2),
			ExpiresAt: rec.ExpiresAt.String(),
		}
	}

	registry := validator.DefaultRegistry()
	for _, k := range a.gateway.Keys() {
		rep.Keys = append(rep.Keys, checkKey(a.store, k, registry, a.config.MaxSize))
	}
	return rep
}

func checkKey(store kvstore.Storage, k session.Key, registry *validator.Registry, maxSize int) keyReport {
	kr := keyReport{Key: k.Name, Kind: string(k.Kind)}

	raw, found, err := store.Get(k.Name)
	switch {
	case err != nil:
		kr.Status = keyError
		kr.Error = err.Error()
		return kr
	case !found:
		kr.Status = keyMissing
		return kr
	}

	predicate, _ := registry.Lookup(k.Kind)
	res := safeparse.Parse(raw, safeparse.Options{
		Validator: predicate,
		Context:   k.Name,
		MaxSize:   maxSize,
	})

	kr.Size = len(raw)
	if res.Success {
		kr.Status = keyOK
		return kr
	}
	kr.Status = keyCorrupted
	kr.Stage = string(res.Stage)
	kr.Error = res.Error
	return kr
}

func writeText(w io.Writer, rep storageReport) error {
	fmt.Fprintf(w, "backend: %s (%s)\n", rep.Backend, rep.Target)
	fmt.Fprintf(w, "state:   %s\n", rep.State)
	if s := rep.Session; s != nil {
		fmt.Fprintf(w, "user:    %s <%s>\n", s.UserID, s.Email)
		fmt.Fprintf(w, "expires: %s\n", s.ExpiresAt)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tKIND\tSTATUS\tDETAIL")
	for _, k := range rep.Keys {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Key, k.Kind, k.Status, k.Error)
	}
	return tw.Flush()
}
