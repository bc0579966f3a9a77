package lfpid

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jmbenlloch/go-hdf5"
)

const STRLEN = 20

// Name of the parameter histogram inside a parameter file.
const ParameterObjectName = "hpar"

// Location of the track table inside an input file.
const (
	TrackGroupName = "Tracks"
	TrackTableName = "tracks"
)

type ParameterBinHDF5 struct {
	label [STRLEN]byte
	value float64
}

type TrackHDF5 struct {
	innerParam float32
	signal     float32
	tinyNSigma [NSpecies]int8
	expSigma   [NSpecies]float32
	nSigma     [NSpecies]float32
}

type RunInfoHDF5 struct {
	runID     [36]byte
	createdAt int64
	nTracks   int64
}

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func convertFromHdf5String(b [STRLEN]byte) string {
	return string(bytes.TrimRight(b[:], "\x00"))
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer file_space.Close()

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{32768}
	plist.SetChunk(chunks)
	plist.SetDeflate(configuration.CompressionLevel)

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data to a 1-D table that already holds rowsInFile rows.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, rowsInFile int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("error creating dataspace: %w", err)
	}
	defer dataspace.Close()

	// extend
	newsize := []uint{uint(rowsInFile) + length}
	if err := dataset.Resize(newsize); err != nil {
		return fmt.Errorf("error resizing table: %w", err)
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(rowsInFile)}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return fmt.Errorf("error selecting hyperslab: %w", err)
	}
	return dataset.WriteSubset(data, dataspace, filespace)
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, rowsInFile int) error {
	array := []T{data}
	return writeArrayToTable(dataset, &array, rowsInFile)
}

// ReadParameterFile reads the hpar histogram of a parameter file.
func ReadParameterFile(path string) (*Histogram, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ErrOpenFile{Filename: path, Err: err}
	}
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: path, Err: err}
	}
	defer f.Close()

	dset, err := f.OpenDataset(ParameterObjectName)
	if err != nil {
		return nil, &ErrMissingObject{Filename: path, Object: ParameterObjectName, Err: err}
	}
	defer dset.Close()

	space := dset.Space()
	dims, _, err := space.SimpleExtentDims()
	space.Close()
	if err != nil {
		return nil, fmt.Errorf("error reading dimensions of %s: %w", ParameterObjectName, err)
	}
	if len(dims) != 1 || dims[0] == 0 {
		return &Histogram{Name: path}, nil
	}

	// The array MUST be allocated before reading
	data := make([]ParameterBinHDF5, dims[0])
	if err := dset.Read(&data); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", ParameterObjectName, err)
	}

	logger.Info(fmt.Sprintf("Setting parameters from file %s", path), "hdf5")
	h := &Histogram{Name: path}
	for _, bin := range data {
		h.Labels = append(h.Labels, convertFromHdf5String(bin.label))
		h.Contents = append(h.Contents, bin.value)
	}
	return h, nil
}

// WriteParameterFile stores a parameter set as the hpar object of a new file.
func WriteParameterFile(path string, p ParameterSet) (err error) {
	f, err := openFile(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	h := NewParameterHistogram(ParameterObjectName, p)
	data := make([]ParameterBinHDF5, h.NBins())
	for i := range data {
		data[i] = ParameterBinHDF5{
			label: convertToHdf5String(h.Labels[i]),
			value: h.Contents[i],
		}
	}

	dims := []uint{uint(len(data))}
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("error creating dataspace: %w", err)
	}
	defer space.Close()
	dtype, err := hdf5.NewDatatypeFromValue(ParameterBinHDF5{})
	if err != nil {
		return &ErrCreateTable{TableName: ParameterObjectName, Err: err}
	}
	dset, err := f.CreateDataset(ParameterObjectName, dtype, space)
	if err != nil {
		return &ErrCreateTable{TableName: ParameterObjectName, Err: err}
	}
	defer dset.Close()
	return dset.Write(&data)
}

// HDF5TrackSource reads the track table of an input file in batches.
type HDF5TrackSource struct {
	File      *hdf5.File
	Filename  string
	Dataset   *hdf5.Dataset
	BatchSize int
	NTracks   int
	pos       int
	end       int
}

// NewHDF5TrackSource opens filename and positions the reader at skip. At most
// maxTracks tracks are served when maxTracks > 0.
func NewHDF5TrackSource(filename string, batchSize, skip, maxTracks int) (*HDF5TrackSource, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	path := TrackGroupName + "/" + TrackTableName
	dset, err := f.OpenDataset(path)
	if err != nil {
		f.Close()
		return nil, &ErrMissingObject{Filename: filename, Object: path, Err: err}
	}
	space := dset.Space()
	dims, _, err := space.SimpleExtentDims()
	space.Close()
	if err != nil {
		dset.Close()
		f.Close()
		return nil, fmt.Errorf("error reading dimensions of %s: %w", path, err)
	}

	src := &HDF5TrackSource{
		File:      f,
		Filename:  filename,
		Dataset:   dset,
		BatchSize: batchSize,
		NTracks:   int(dims[0]),
		pos:       skip,
		end:       int(dims[0]),
	}
	if maxTracks > 0 && skip+maxTracks < src.end {
		src.end = skip + maxTracks
	}
	if src.BatchSize <= 0 {
		src.BatchSize = 10000
	}
	return src, nil
}

func (s *HDF5TrackSource) NextBatch() ([]Track, error) {
	if s.pos >= s.end {
		return nil, io.EOF
	}
	length := s.BatchSize
	if s.pos+length > s.end {
		length = s.end - s.pos
	}

	count := []uint{uint(length)}
	memspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating dataspace: %w", err)
	}
	defer memspace.Close()
	filespace := s.Dataset.Space()
	defer filespace.Close()
	if err := filespace.SelectHyperslab([]uint{uint(s.pos)}, nil, count, nil); err != nil {
		return nil, fmt.Errorf("error selecting hyperslab: %w", err)
	}

	data := make([]TrackHDF5, length)
	if err := s.Dataset.ReadSubset(&data, memspace, filespace); err != nil {
		return nil, fmt.Errorf("error reading tracks %d-%d: %w", s.pos, s.pos+length, err)
	}
	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Reading tracks %d-%d", s.pos, s.pos+length), "trackReader")
	}
	s.pos += length

	tracks := make([]Track, length)
	for i, t := range data {
		tracks[i] = Track{
			InnerParam: t.innerParam,
			Signal:     t.signal,
			TinyNSigma: t.tinyNSigma,
			ExpSigma:   t.expSigma,
			NSigma:     t.nSigma,
		}
	}
	return tracks, nil
}

func (s *HDF5TrackSource) Close() error {
	return errors.Join(s.Dataset.Close(), s.File.Close())
}
