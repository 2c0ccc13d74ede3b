// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package gostlink drives an ST-Link V2 / V2-1 debug probe over USB.
//
// this code is mainly inspired and based on the openocd project source code
// for detailed information see
//
// https://sourceforge.net/p/openocd/code
package gostlink

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/gousb"
)

// StLink is an open st-link probe. It is not safe for concurrent use.
type StLink struct {
	libUsbContext   *gousb.Context
	libUsbDevice    *gousb.Device
	libUsbConfig    *gousb.Config
	libUsbInterface *gousb.Interface

	rxEndpoint io.Reader
	txEndpoint io.Writer

	stMode  StLinkMode
	version stLinkVersion

	vid gousb.ID
	pid gousb.ID

	sleep func(time.Duration)
}

// ProbeInfo describes a connected st-link found by List.
type ProbeInfo struct {
	VendorID  uint16
	ProductID uint16
	Serial    string
}

func (p ProbeInfo) String() string {
	return fmt.Sprintf("%04x:%04x [%s]", p.VendorID, p.ProductID, p.Serial)
}

func matchIds(cfg Config, desc *gousb.DeviceDesc) bool {
	if cfg.VendorID != AllSupportedVIds {
		if desc.Vendor != gousb.ID(cfg.VendorID) {
			return false
		}
	} else if desc.Vendor != stLinkVid {
		return false
	}

	if cfg.ProductID != AllSupportedPIds {
		return desc.Product == gousb.ID(cfg.ProductID)
	}

	for _, pid := range supportedPids {
		if desc.Product == pid {
			return true
		}
	}
	return false
}

// List enumerates the st-links matching cfg without claiming them.
func List(cfg Config) ([]ProbeInfo, error) {
	usbCtx := gousb.NewContext()
	defer usbCtx.Close()

	devices, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return matchIds(cfg, desc)
	})
	if err != nil && len(devices) == 0 {
		return nil, err
	}

	var probes []ProbeInfo
	for _, dev := range devices {
		serial, _ := dev.SerialNumber()
		probes = append(probes, ProbeInfo{
			VendorID:  uint16(dev.Desc.Vendor),
			ProductID: uint16(dev.Desc.Product),
			Serial:    serial,
		})
		dev.Close()
	}

	return probes, nil
}

// Open claims the st-link selected by cfg, reads its firmware version and
// brings it back to idle mode.
func Open(cfg Config) (*StLink, error) {
	usbCtx := gousb.NewContext()

	devices, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return matchIds(cfg, desc)
	})
	if err != nil && len(devices) == 0 {
		usbCtx.Close()
		return nil, fmt.Errorf("scan for st-link: %w", err)
	}

	device, err := selectDevice(devices, cfg.Serial)
	if err != nil {
		usbCtx.Close()
		return nil, err
	}

	h := &StLink{
		libUsbContext: usbCtx,
		libUsbDevice:  device,
		vid:           device.Desc.Vendor,
		pid:           device.Desc.Product,
		sleep:         time.Sleep,
	}

	if err := h.claim(); err != nil {
		h.Close()
		return nil, err
	}

	if err := h.readVersion(); err != nil {
		h.Close()
		return nil, err
	}

	// the probe may still sit in DFU or a debug mode from a previous session
	if err := h.LeaveState(); err != nil {
		h.Close()
		return nil, err
	}

	return h, nil
}

// selectDevice keeps the device matching serial and closes the others
func selectDevice(devices []*gousb.Device, serial string) (*gousb.Device, error) {
	if len(devices) == 0 {
		return nil, errors.New("could not find any st-link connected to computer")
	}

	var selected *gousb.Device

	if len(devices) == 1 && serial == "" {
		selected = devices[0]
	} else if serial == "" {
		for _, dev := range devices {
			dev.Close()
		}
		return nil, errors.New("could not identify exact st-link by given parameters, a serial number is needed")
	} else {
		for _, dev := range devices {
			devSerial, _ := dev.SerialNumber()

			logger.Debugf("compare serial no %s with number %s", devSerial, serial)

			if selected == nil && devSerial == serial {
				selected = dev
				logger.Infof("found st-link with serial number %s", devSerial)
				continue
			}
			dev.Close()
		}
	}

	if selected == nil {
		return nil, fmt.Errorf("could not find st-link with serial number %s", serial)
	}

	return selected, nil
}

func (h *StLink) claim() error {
	if h.pid == stLinkV1Pid {
		return errors.New("st-link V1 is not supported")
	}

	if err := h.libUsbDevice.SetAutoDetach(true); err != nil {
		logger.Debugf("auto detach not available: %v", err)
	}

	var err error

	h.libUsbConfig, err = h.libUsbDevice.Config(1)
	if err != nil {
		return fmt.Errorf("request configuration #1 of st-link: %w", err)
	}

	h.libUsbInterface, err = h.libUsbConfig.Interface(0, 0)
	if err != nil {
		return fmt.Errorf("claim interface 0,0 of st-link: %w", err)
	}

	txNo := usbTxEndpointNo
	if h.pid == stLinkV21Pid || h.pid == stLinkV21NoMsdPid {
		txNo = usbTxEndpointV21No
	}

	rx, err := h.libUsbInterface.InEndpoint(usbRxEndpointNo)
	if err != nil {
		return fmt.Errorf("open rx endpoint: %w", err)
	}

	tx, err := h.libUsbInterface.OutEndpoint(txNo)
	if err != nil {
		return fmt.Errorf("open tx endpoint: %w", err)
	}

	h.rxEndpoint = rx
	h.txEndpoint = tx

	return nil
}

// Close releases the usb resources. The debug link is left as is; callers
// leave debug mode first.
func (h *StLink) Close() error {
	logger.Debugf("close st-link device [%04x:%04x]", uint16(h.vid), uint16(h.pid))

	if h.libUsbInterface != nil {
		h.libUsbInterface.Close()
		h.libUsbInterface = nil
	}
	if h.libUsbConfig != nil {
		h.libUsbConfig.Close()
		h.libUsbConfig = nil
	}
	if h.libUsbDevice != nil {
		h.libUsbDevice.Close()
		h.libUsbDevice = nil
	}
	if h.libUsbContext != nil {
		h.libUsbContext.Close()
		h.libUsbContext = nil
	}
	return nil
}

func usbWrite(w io.Writer, data []byte) error {
	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("usb write: %w", err)
	}
	if n != len(data) {
		return newUsbError(fmt.Sprintf("usb short write (%d of %d bytes)", n, len(data)), usbErrorFail)
	}
	return nil
}

func usbRead(r io.Reader, data []byte) error {
	n, err := r.Read(data)
	if err != nil {
		return fmt.Errorf("usb read: %w", err)
	}
	if n != len(data) {
		return newUsbError(fmt.Sprintf("usb short read (%d of %d bytes)", n, len(data)), usbErrorFail)
	}
	return nil
}
