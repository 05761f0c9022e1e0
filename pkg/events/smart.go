/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package events

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-pel/pkg/pel"
)

const (
	// SmartHealthSize is the size of the SMART / Health Information log page
	SmartHealthSize = 512
	// smartHealthFixedSize covers the defined fields, the rest is reserved
	smartHealthFixedSize = 232
	// TemperatureSensors is the number of temperature sensor fields
	TemperatureSensors = 8
)

// SmartHealth is a snapshot of the SMART / Health Information log page
type SmartHealth struct {
	layers.BaseLayer                `json:"-"`
	CriticalWarning                 uint8                      `json:"criticalWarning"`
	CompositeTemperature            Kelvin                     `json:"compositeTemperature"`
	AvailableSpare                  uint8                      `json:"availableSpare"`
	AvailableSpareThreshold         uint8                      `json:"availableSpareThreshold"`
	PercentageUsed                  uint8                      `json:"percentageUsed"`
	EnduranceGroupWarningSummary    uint8                      `json:"enduranceGroupWarningSummary"`
	DataUnitsRead                   pel.Uint128                `json:"dataUnitsRead"`
	DataUnitsWritten                pel.Uint128                `json:"dataUnitsWritten"`
	HostReadCommands                pel.Uint128                `json:"hostReadCommands"`
	HostWriteCommands               pel.Uint128                `json:"hostWriteCommands"`
	ControllerBusyTime              pel.Uint128                `json:"controllerBusyTime"`
	PowerCycles                     pel.Uint128                `json:"powerCycles"`
	PowerOnHours                    pel.Uint128                `json:"powerOnHours"`
	UnsafeShutdowns                 pel.Uint128                `json:"unsafeShutdowns"`
	MediaErrors                     pel.Uint128                `json:"mediaErrors"`
	ErrorLogEntries                 pel.Uint128                `json:"errorLogEntries"`
	WarningTemperatureTime          uint32                     `json:"warningTemperatureTime"`
	CriticalTemperatureTime         uint32                     `json:"criticalTemperatureTime"`
	TemperatureSensor               [TemperatureSensors]Kelvin `json:"temperatureSensor"`
	ThermalMgmtTemp1TransitionCount uint32                     `json:"thermalMgmtTemp1TransitionCount"`
	ThermalMgmtTemp2TransitionCount uint32                     `json:"thermalMgmtTemp2TransitionCount"`
	ThermalMgmtTemp1TotalTime       uint32                     `json:"thermalMgmtTemp1TotalTime"`
	ThermalMgmtTemp2TotalTime       uint32                     `json:"thermalMgmtTemp2TotalTime"`
}

func (s *SmartHealth) LayerType() gopacket.LayerType {
	return SmartHealthLayerType
}

func (s *SmartHealth) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeSmartHealth, data, smartHealthFixedSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 00 - critical warning
	if s.CriticalWarning, err = c.Uint8("critical warning"); err != nil {
		return err
	}
	// 02:01 - composite temperature
	t, err := c.Uint16("composite temperature")
	if err != nil {
		return err
	}
	s.CompositeTemperature = Kelvin(t)
	// 03 - available spare
	if s.AvailableSpare, err = c.Uint8("available spare"); err != nil {
		return err
	}
	// 04 - available spare threshold
	if s.AvailableSpareThreshold, err = c.Uint8("available spare threshold"); err != nil {
		return err
	}
	// 05 - percentage used
	if s.PercentageUsed, err = c.Uint8("percentage used"); err != nil {
		return err
	}
	// 06 - endurance group critical warning summary
	if s.EnduranceGroupWarningSummary, err = c.Uint8("endurance group critical warning summary"); err != nil {
		return err
	}
	// 31:07 - reserved
	if err = c.Skip(25, "smart reserved"); err != nil {
		return err
	}
	// 191:32 - 128-bit counters
	counters := []struct {
		dst   *pel.Uint128
		field string
	}{
		{&s.DataUnitsRead, "data units read"},
		{&s.DataUnitsWritten, "data units written"},
		{&s.HostReadCommands, "host read commands"},
		{&s.HostWriteCommands, "host write commands"},
		{&s.ControllerBusyTime, "controller busy time"},
		{&s.PowerCycles, "power cycles"},
		{&s.PowerOnHours, "power on hours"},
		{&s.UnsafeShutdowns, "unsafe shutdowns"},
		{&s.MediaErrors, "media and data integrity errors"},
		{&s.ErrorLogEntries, "number of error information log entries"},
	}
	for _, counter := range counters {
		if *counter.dst, err = c.Uint128(counter.field); err != nil {
			return err
		}
	}
	// 195:192 - warning composite temperature time
	if s.WarningTemperatureTime, err = c.Uint32("warning composite temperature time"); err != nil {
		return err
	}
	// 199:196 - critical composite temperature time
	if s.CriticalTemperatureTime, err = c.Uint32("critical composite temperature time"); err != nil {
		return err
	}
	// 215:200 - temperature sensors 1-8
	for i := range s.TemperatureSensor {
		t, err := c.Uint16("temperature sensor")
		if err != nil {
			return err
		}
		s.TemperatureSensor[i] = Kelvin(t)
	}
	// 231:216 - thermal management temperature transition counts and total times
	for _, dst := range []*uint32{
		&s.ThermalMgmtTemp1TransitionCount,
		&s.ThermalMgmtTemp2TransitionCount,
		&s.ThermalMgmtTemp1TotalTime,
		&s.ThermalMgmtTemp2TotalTime,
	} {
		if *dst, err = c.Uint32("thermal management temperature"); err != nil {
			return err
		}
	}
	// 511:232 - reserved, may be cut short by the controller
	consumed := len(data)
	if consumed > SmartHealthSize {
		consumed = SmartHealthSize
	}
	s.BaseLayer = pel.NewBaseLayer(data, consumed)
	return nil
}
