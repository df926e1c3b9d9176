package main

import (
	"testing"

	"cna-archives/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "debug", Format: "text"}}
	l, err := newLogger(cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	cfg.Server.ProductionMode = true
	l, err = newLogger(cfg)
	require.NoError(t, err)
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	cfg.Log.Level = "bavard"
	_, err = newLogger(cfg)
	assert.Error(t, err)
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "bootstrap", "export"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, exportCmd.Flags().Lookup("output"))
}
