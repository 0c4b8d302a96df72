package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"platodropbox/internal/core/domain/ports"
)

const (
	msgEnablingWifi   = "Establishing a network connection."
	msgWaitingNetwork = "Waiting for the network to come up."
)

// WaitForNetwork blocks until the host reports connectivity by writing a line to in.
// When already online it returns immediately. There is no timeout.
func WaitForNetwork(host ports.Host, in io.Reader, wifiEnabled, online bool) error {
	if online {
		return nil
	}

	if !wifiEnabled {
		host.ShowNotification(msgEnablingWifi)
		host.SetWifi(true)
	} else {
		host.ShowNotification(msgWaitingNetwork)
	}

	_, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("waiting for network: %w", err)
	}
	return nil
}
