package service

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateHost struct {
	stubHost
	notes []string
	wifi  []bool
}

func (h *gateHost) ShowNotification(m string) { h.notes = append(h.notes, m) }
func (h *gateHost) SetWifi(enabled bool) { h.wifi = append(h.wifi, enabled) }

func TestWaitForNetwork_OnlineReturnsImmediately(t *testing.T) {
	h := &gateHost{}
	// A reader that would fail proves stdin is never touched.
	require.NoError(t, WaitForNetwork(h, iotest.ErrReader(errors.New("must not read")), false, true))
	assert.Empty(t, h.notes)
	assert.Empty(t, h.wifi)
}

func TestWaitForNetwork_EnablesWifi(t *testing.T) {
	h := &gateHost{}
	require.NoError(t, WaitForNetwork(h, strings.NewReader("up\n"), false, false))
	assert.Equal(t, []string{"Establishing a network connection."}, h.notes)
	assert.Equal(t, []bool{true}, h.wifi)
}

func TestWaitForNetwork_WaitsWhenWifiAlreadyOn(t *testing.T) {
	h := &gateHost{}
	require.NoError(t, WaitForNetwork(h, strings.NewReader("\n"), true, false))
	assert.Equal(t, []string{"Waiting for the network to come up."}, h.notes)
	assert.Empty(t, h.wifi)
}

func TestWaitForNetwork_ClosedInputProceeds(t *testing.T) {
	require.NoError(t, WaitForNetwork(&gateHost{}, strings.NewReader(""), true, false))
}

func TestWaitForNetwork_ReadErrorIsFatal(t *testing.T) {
	err := WaitForNetwork(&gateHost{}, iotest.ErrReader(errors.New("bad fd")), true, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "waiting for network")
}
