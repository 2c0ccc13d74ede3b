// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package chips

const (
	sramBase  = 0x20000000
	flashBase = 0x08000000

	flashSizeRegF0 = 0x1ffff7cc
	flashSizeRegF4 = 0x1fff7a22

	kB = 1024
)

func init() {
	registerCore(Core{PartNumber: 0xc20, Type: "CortexM0", IDCodeAddr: 0x40015800})
	registerCore(Core{PartNumber: 0xc24, Type: "CortexM4", IDCodeAddr: 0xE0042000})

	// STM32F4
	registerDevice(Device{
		ID:            0x413,
		Type:          "STM32F405/407/415/417",
		SRAMBase:      sramBase,
		SRAMSize:      192 * kB,
		FlashBase:     flashBase,
		FlashSizeAddr: flashSizeRegF4,
	})
	registerDevice(Device{
		ID:            0x419,
		Type:          "STM32F42x/43x",
		SRAMBase:      sramBase,
		SRAMSize:      256 * kB,
		FlashBase:     flashBase,
		FlashSizeAddr: flashSizeRegF4,
	})

	// STM32F0
	// STM32F030x8 reports 0x440 too and is listed as STM32F05x; both have 8K SRAM.
	registerDevice(Device{
		ID:            0x440,
		Type:          "STM32F05x",
		SRAMBase:      sramBase,
		SRAMSize:      8 * kB,
		FlashBase:     flashBase,
		FlashSizeAddr: flashSizeRegF0,
		FlashPageSize: 1 * kB,
	})
	registerDevice(Device{
		ID:            0x444,
		Type:          "STM32F03x",
		SRAMBase:      sramBase,
		SRAMSize:      4 * kB,
		FlashBase:     flashBase,
		FlashSizeAddr: flashSizeRegF0,
		FlashPageSize: 1 * kB,
	})
	registerDevice(Device{
		ID:            0x445,
		Type:          "STM32F04x",
		SRAMBase:      sramBase,
		SRAMSize:      6 * kB,
		FlashBase:     flashBase,
		FlashSizeAddr: flashSizeRegF0,
		FlashPageSize: 1 * kB,
	})
	registerDevice(Device{
		ID:            0x448,
		Type:          "STM32F07x",
		SRAMBase:      sramBase,
		SRAMSize:      16 * kB,
		FlashBase:     flashBase,
		FlashSizeAddr: flashSizeRegF0,
		FlashPageSize: 2 * kB,
	})
}
