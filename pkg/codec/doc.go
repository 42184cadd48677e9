// Package codec moves sensor metadata records between raw leader-file bytes,
// typed Go structs and OSSIM keyword lists.
//
// # Records
//
// A record type describes its layout once, as an ordered sequence of field
// operations:
//
//	func (p *SRGRConversionParameters) Layout(f codec.Fields) {
//	    f.Int32("first_zero_doppler_time_day", &p.FirstZeroDopplerTimeDay)
//	    f.Uint8("attach_flag", &p.AttachFlag)
//	    f.Float32("ground_range_origin", &p.GroundRangeOrigin)
//	    f.Reserved("spare", p.Spare[:])
//	}
//
// RecordCodec derives four operations from that declaration:
//
//   - ParseStream reads the fields from a byte stream in declared order
//   - WriteStream writes them back in the same order
//   - SaveState stores every field in a keyword list under prefix.field
//   - LoadState reads them back from a keyword list
//
// Every field has a fixed width for a given record type, so a record written
// with WriteStream and read with ParseStream in the same byte order yields
// the same values. Free text is space padded on write; trailing spaces are
// therefore not significant.
//
// # Byte order
//
// Binary fields are read as host-order scalars and swapped with
// endian.Swap when the on-disk order differs from endian.NativeOrder. The
// order is an argument of ParseStream and WriteStream, never a property of
// the record, so the same record can be re-encoded for a different target.
//
// # Tables
//
// Variable-length data is modelled as a count field followed by a Table of
// sub-records. ParseStream reads exactly count entries. LoadState looks up the
// indices 0..count-1 in the keyword list and keeps the entries it finds; a
// shortfall is reported as a CountMismatchWarning rather than an error.
//
// # Error Handling
//
// Binary failures stop the operation at the first failing field:
//   - ParseError wraps ErrTruncatedStream, ErrMalformedField or ErrTableTooLarge
//   - WriteError wraps ErrStreamWrite, ErrFieldOverflow or ErrCountMismatch
//
// A record whose ParseStream failed is only partially populated and must be
// discarded.
//
// Keyword-list loading never stops early. Each missing or unparseable key
// becomes a MissingKeywordWarning, leaves the field at its zero value and
// makes LoadState return false; the rest of the record is still populated.
//
// # Thread Safety
//
// RecordCodec instances are safe for concurrent use. Records and keyword
// lists are not; each is owned by one caller at a time.
package codec
