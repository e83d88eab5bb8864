package samplesheet

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetText = `[Header],,,,,,,,,,
IEMFileVersion,4,,,,,,,,,
Investigator Name,Knight,,,,,,,,,
Experiment Name,RKL0042,,,,,,,,,
Date,2019-11-03,,,,,,,,,
Workflow,GenerateFASTQ,,,,,,,,,
,,,,,,,,,,
[Reads],,,,,,,,,,
151,,,,,,,,,,
151,,,,,,,,,,
,,,,,,,,,,
[Settings],,,,,,,,,,
ReverseComplement,0,,,,,,,,,
,,,,,,,,,,
[Data],,,,,,,,,,
Sample_ID,Sample_Name,Sample_Plate,Sample_Well,I7_Index_ID,index,I5_Index_ID,index2,Sample_Project,Well_description,Lane
sample1,sample.1,Plate_1,A1,iTru7_107_07,CCGACTAT,iTru5_01_A,ACCGACAA,Baz_123,sample.1,1
sample2,sample.2,Plate_1,C1,iTru7_107_08,CCGACTAT,iTru5_01_B,AGTGGCAA,Baz_123,sample.2,1
sample1,sample.1,Plate_1,A1,iTru7_107_07,CCGACTAT,iTru5_01_A,ACCGACAA,Baz_123,sample.1,3
sample3,sample.3,Plate_1,E1,iTru7_107_09,GCCTTGTT,iTru5_01_C,CACAGACT,FooBar_666,sample.3,3
,,,,,,,,,,
[Bioinformatics],,,,,,,,,,
Sample_Project,QiitaID,BarcodesAreRC,ForwardAdapter,ReverseAdapter,HumanFiltering,,,,,
Baz_123,123,False,AACC,GGTT,False,,,,,
FooBar_666,666,False,AACC,GGTT,False,,,,,
`

func TestParse(t *testing.T) {
	sheet, err := Parse(strings.NewReader(sheetText), "191103_D32611_0365_G00DHB5YXX")
	require.NoError(t, err)

	assert.Equal(t, "2019-11-03", sheet.Header["Date"])
	assert.Equal(t, "0", sheet.Settings["ReverseComplement"])
	assert.Equal(t, []string{"sample_id", "sample_name", "sample_plate", "sample_well", "i7_index_id",
		"index", "i5_index_id", "index2", "sample_project", "well_description", "lane"}, sheet.Columns)
	require.Equal(t, 4, len(sheet.Samples))

	s := sheet.Samples[2]
	assert.Equal(t, "191103_D32611_0365_G00DHB5YXX", s.Run)
	assert.Equal(t, "sample1", s.SampleID)
	assert.Equal(t, "Baz_123", s.Project)
	assert.Equal(t, 3, s.Lane)
	assert.Equal(t, "sample.1", s.WellDescription)
	assert.Equal(t, len(sheet.Columns), len(s.Fields))
	assert.Equal(t, "A1", s.Fields[sheet.Column("sample_well")])

	require.Equal(t, 2, len(sheet.Bioinformatics))
	assert.Equal(t, "666", sheet.Bioinformatics[1]["QiitaID"])
	assert.Equal(t, -1, sheet.Column("nope"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, text string
	}{
		{"no data", "[Header]\nDate,2019-11-03\n"},
		{"missing lane", "[Data]\nSample_ID,Sample_Project,Well_description\ns1,Baz_1,s.1\n"},
		{"bad lane", "[Data]\nSample_ID,Sample_Project,Well_description,Lane\ns1,Baz_1,s.1,x\n"},
		{"zero lane", "[Data]\nSample_ID,Sample_Project,Well_description,Lane\ns1,Baz_1,s.1,0\n"},
		{"duplicate", "[Data]\nSample_ID,Sample_Project,Well_description,Lane\ns1,Baz_1,s.1,1\ns1,Baz_1,s.1,1\n"},
		{"orphan rows", "Sample_ID,Lane\n[Data]\nSample_ID,Sample_Project,Well_description,Lane\n"},
		{"repeated section", "[Data]\nSample_ID,Sample_Project,Well_description,Lane\n[Data]\n"},
	}
	for _, test := range tests {
		_, err := Parse(strings.NewReader(test.text), "run")
		require.Error(t, err, test.name)
		assert.True(t, errors.Is(errors.Invalid, err), "%s: %v", test.name, err)
	}
}

func TestParseByteOrderMark(t *testing.T) {
	text := "\ufeff[Data]\nSample_ID,Sample_Project,Well_description,Lane\ns1,Baz_1,s.1,2\n"
	sheet, err := Parse(strings.NewReader(text), "run")
	require.NoError(t, err)
	require.Equal(t, 1, len(sheet.Samples))
	assert.Equal(t, 2, sheet.Samples[0].Lane)
}

func TestLoad(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "samplesheet")
	defer cleanup()
	path := filepath.Join(dir, "sample-sheet.csv")
	require.NoError(t, ioutil.WriteFile(path, []byte(sheetText), 0644))

	sheet, err := Load(context.Background(), path, "run")
	require.NoError(t, err)
	assert.Equal(t, 4, len(sheet.Samples))

	_, err = Load(context.Background(), filepath.Join(dir, "missing.csv"), "run")
	assert.Error(t, err)
}
