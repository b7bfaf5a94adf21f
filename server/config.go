package server

import "github.com/cyclopcam/dbh"

type Config struct {
	DB   dbh.DBConfig `json:"db"`
	HTTP HTTPConfig   `json:"http"`
}

type HTTPConfig struct {
	// Addr is the listen address, eg ":8080"
	Addr string `json:"addr"`
	// Production switches the session cookie to Secure + SameSite=None, for a
	// front end hosted on a different origin, behind HTTPS. Off, the cookie is
	// SameSite=Lax so that plain-HTTP localhost development works.
	Production bool `json:"production"`
	// AllowedOrigins are the front-end origins allowed to make credentialed
	// cross-origin requests, eg ["http://localhost:5173"].
	AllowedOrigins []string `json:"allowedOrigins"`
}
