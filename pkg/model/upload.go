package model

// UploadedSoundDetails is returned by the upload and describe endpoints.
type UploadedSoundDetails struct {
	// Detail is the human-readable outcome message.
	Detail string `json:"detail,omitempty"`

	// ID is set once the sound has been described and queued for processing.
	ID *int `json:"id,omitempty"`

	// Filename is the name of the uploaded file awaiting description.
	Filename string `json:"filename,omitempty"`
}

// PendingUploads lists the authorised user's sounds that are not yet public.
type PendingUploads struct {
	// PendingDescription holds filenames of uploads that still need describing.
	PendingDescription []string `json:"pending_description,omitempty"`

	PendingProcessing []Sound `json:"pending_processing,omitempty"`
	PendingModeration []Sound `json:"pending_moderation,omitempty"`
}

// AudioDescriptors lists the analysis descriptor names the API can return.
// Each list is sorted and free of duplicates.
type AudioDescriptors struct {
	FixedLengthOneDimensional   []string `json:"fixed_length_one_dimensional,omitempty"`
	FixedLengthMultiDimensional []string `json:"fixed_length_multi_dimensional,omitempty"`
	VariableLength              []string `json:"variable_length,omitempty"`
}
