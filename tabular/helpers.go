package tabular

import (
	"fmt"
	"io"
)

type countingWriter struct {
	w     io.Writer
	count int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

func headerLabels(schema Schema) []string {
	labels := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		label := col.Label
		if label == "" {
			label = col.Name
		}
		labels[i] = label
	}
	return labels
}
