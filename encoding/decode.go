package encoding

import (
	"encoding/binary"
	"errors"
	"reflect"
	"sync"
	"unsafe"

	"github.com/modern-go/reflect2"
)

var ErrUnsupportedType = errors.New("unsupported type")

type handler = func(Stream, unsafe.Pointer) error

type handlerData struct {
	handler handler
	size    int
}

var decodeProcess sync.Map

// DecodeSize returns the number of bytes Decode consumes for val.
func DecodeSize(val any) (int, error) {
	typ, err := elemType(val)
	if err != nil {
		return 0, err
	}
	data, err := getUnmarshalData(typ)
	if err != nil {
		return 0, err
	}
	return data.size, nil
}

// Decode fills the value val points to from a packed little-endian layout.
// Fixed-size integers, bools, arrays and structs of those are supported;
// struct fields tagged `encoding:"ignore"` are left untouched.
func Decode(stream Stream, val any) error {
	typ, err := elemType(val)
	if err != nil {
		return err
	}
	data, err := getUnmarshalData(typ)
	if err != nil {
		return err
	}
	return data.handler(stream, reflect2.PtrOf(val))
}

func elemType(val any) (reflect2.Type, error) {
	if val == nil {
		return nil, ErrUnsupportedType
	}
	typ := reflect2.TypeOf(val)
	if typ.Kind() != reflect.Pointer || reflect2.IsNil(val) {
		return nil, ErrUnsupportedType
	}
	return typ.(reflect2.PtrType).Elem(), nil
}

func getUnmarshalData(typ reflect2.Type) (*handlerData, error) {
	key := typ.RType()
	if v, ok := decodeProcess.Load(key); ok {
		return v.(*handlerData), nil
	}
	unmarshal, size, err := decode(typ)
	if err != nil {
		return nil, err
	}
	data := &handlerData{unmarshal, size}
	decodeProcess.Store(key, data)
	return data, nil
}

func decode(typ reflect2.Type) (handler, int, error) {
	switch typ.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return func(stream Stream, ptr unsafe.Pointer) error {
			_, err := stream.Read(unsafe.Slice((*byte)(ptr), 1))
			return err
		}, 1, nil
	case reflect.Int16, reflect.Uint16:
		return func(stream Stream, ptr unsafe.Pointer) error {
			var b [2]byte
			if _, err := stream.Read(b[:]); err != nil {
				return err
			}
			*(*uint16)(ptr) = binary.LittleEndian.Uint16(b[:])
			return nil
		}, 2, nil
	case reflect.Int32, reflect.Uint32:
		return func(stream Stream, ptr unsafe.Pointer) error {
			var b [4]byte
			if _, err := stream.Read(b[:]); err != nil {
				return err
			}
			*(*uint32)(ptr) = binary.LittleEndian.Uint32(b[:])
			return nil
		}, 4, nil
	case reflect.Int64, reflect.Uint64:
		return func(stream Stream, ptr unsafe.Pointer) error {
			var b [8]byte
			if _, err := stream.Read(b[:]); err != nil {
				return err
			}
			*(*uint64)(ptr) = binary.LittleEndian.Uint64(b[:])
			return nil
		}, 8, nil
	case reflect.Array:
		return decodeArray(typ.(reflect2.ArrayType))
	case reflect.Struct:
		return decodeStruct(typ.(reflect2.StructType))
	}
	return nil, 0, ErrUnsupportedType
}

func decodeArray(typ reflect2.ArrayType) (handler, int, error) {
	count := typ.Len()
	elem := typ.Elem()
	unmarshal, elemSize, err := decode(elem)
	if err != nil {
		return nil, 0, err
	}
	stride := elem.Type1().Size()
	return func(stream Stream, ptr unsafe.Pointer) error {
		for i := 0; i < count; i++ {
			if err := unmarshal(stream, unsafe.Add(ptr, uintptr(i)*stride)); err != nil {
				return err
			}
		}
		return nil
	}, count * elemSize, nil
}

type structData struct {
	handler handler
	offset  uintptr
}

func decodeStruct(typ reflect2.StructType) (handler, int, error) {
	count := typ.NumField()
	fields := make([]structData, 0, count)
	var size int
	for i := 0; i < count; i++ {
		field := typ.Field(i)
		if field.Tag().Get("encoding") == "ignore" {
			continue
		}
		unmarshal, fieldSize, err := decode(field.Type())
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, structData{unmarshal, field.Offset()})
		size += fieldSize
	}
	return func(stream Stream, ptr unsafe.Pointer) error {
		for _, data := range fields {
			if err := data.handler(stream, unsafe.Add(ptr, data.offset)); err != nil {
				return err
			}
		}
		return nil
	}, size, nil
}
