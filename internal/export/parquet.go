package export

import (
	"fmt"
	"io"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type parquetRow struct {
	Index      int64   `parquet:"name=index, type=INT64"`
	TimeS      float64 `parquet:"name=time_s, type=DOUBLE"`
	Force      float64 `parquet:"name=force, type=DOUBLE"`
	Velocity   float64 `parquet:"name=velocity, type=DOUBLE"`
	Angle      float64 `parquet:"name=angle, type=DOUBLE"`
	Torque     float64 `parquet:"name=torque, type=DOUBLE"`
	Power      float64 `parquet:"name=power, type=DOUBLE"`
	Speed      float64 `parquet:"name=speed, type=DOUBLE"`
	Repetition int32   `parquet:"name=repetition, type=INT32"`
	Direction  string  `parquet:"name=direction, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Disabled   bool    `parquet:"name=disabled, type=BOOLEAN"`
}

// MarshalParquet encodes records as a snappy-compressed parquet file.
func MarshalParquet(records []Record) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()

	pw, err := writer.NewParquetWriter(fw, new(parquetRow), 4)
	if err != nil {
		return nil, fmt.Errorf("creating parquet writer: %w", err)
	}

	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, r := range records {
		row := parquetRow{
			Index:      r.Index,
			TimeS:      r.TimeS,
			Force:      r.Force,
			Velocity:   r.Velocity,
			Angle:      r.Angle,
			Torque:     r.Torque,
			Power:      r.Power,
			Speed:      r.Speed,
			Repetition: r.Repetition,
			Direction:  r.Direction,
			Disabled:   r.Disabled,
		}

		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()

			return nil, fmt.Errorf("writing parquet row %d: %w", r.Index, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finishing parquet: %w", err)
	}

	if err := fw.Close(); err != nil {
		return nil, err
	}

	return append([]byte(nil), fw.Bytes()...), nil
}

// WriteParquet writes MarshalParquet output to w.
func WriteParquet(w io.Writer, records []Record) error {
	data, err := MarshalParquet(records)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
