package instance

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"selcycle/pkg/apperror"
)

// Load reads a semicolon-delimited instance file. Each non-empty line holds
// at least three integer fields "x;y;cost"; the number of points is the line
// count. Malformed lines are reported with their 1-based line number.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInstanceNotFound,
			"cannot open instance file "+path, err)
	}
	defer f.Close()

	var xs, ys, costs []int

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 3 {
			return nil, apperror.Newf(apperror.CodeInstanceMalformed,
				"%s:%d: expected at least 3 fields, got %d", path, lineNo, len(fields))
		}

		vals := make([]int, 3)
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(fields[i]))
			if err != nil {
				parseErr := apperror.Newf(apperror.CodeInstanceMalformed,
					"%s:%d: field %d is not an integer", path, lineNo, i+1)
				parseErr.Cause = err
				return nil, parseErr
			}
			vals[i] = v
		}

		if vals[2] < 0 {
			return nil, apperror.Newf(apperror.CodeInstanceMalformed,
				"%s:%d: negative node cost %d", path, lineNo, vals[2])
		}

		xs = append(xs, vals[0])
		ys = append(ys, vals[1])
		costs = append(costs, vals[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, apperror.Wrap(apperror.CodeInstanceMalformed,
			"error reading instance file "+path, err)
	}

	if len(xs) == 0 {
		return nil, apperror.New(apperror.CodeEmptyInstance,
			"instance file "+path+" contains no points")
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(name, xs, ys, costs)
}
