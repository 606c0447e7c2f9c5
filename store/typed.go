package store

// PutValue stores a struct as a record and resolves with the stored value,
// including a generated id when the struct's id field was empty. T must map
// its id to the "id" json field to receive it.
func PutValue[T any](s *Store, v T, namespace string) *Future[T] {
	return Then(s.Put(RecordFromStruct(v), namespace), DecodeRecord[T])
}

// GetValue reads the record id from namespace and decodes it into T.
func GetValue[T any](s *Store, id, namespace string) *Future[T] {
	return Then(s.GetOne(id, namespace), DecodeRecord[T])
}

// GetAllValues reads every decodable record in namespace into T. Records
// that do not decode are skipped like unreadable files.
func GetAllValues[T any](s *Store, namespace string) *Future[[]T] {
	return Then(s.GetAll(namespace), func(recs []Record) ([]T, error) {
		out := make([]T, 0, len(recs))
		for _, rec := range recs {
			v, err := DecodeRecord[T](rec)
			if err != nil {
				s.metrics.skip()
				s.logger.Debug("skipping record", "namespace", namespace, "id", rec.ID(), "err", err)
				continue
			}
			out = append(out, v)
		}
		return out, nil
	})
}
